package plan

import (
	"encoding/json"
	"io"
	"os"

	"meshplan/internal/site"
)

// ReplayLog re-renders previously saved coverage rows from r through writer.
// Useful to turn an archived JSONL plan into a table or push it into the DB.
func ReplayLog(r io.Reader, writer CoverageWriter) error {
	dec := json.NewDecoder(r)
	for {
		var row site.CoverageRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
}

// ReplayLogFile opens a file and replays its coverage rows.
func ReplayLogFile(path string, writer CoverageWriter) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer)
}
