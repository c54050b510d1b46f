// Writer implementation printing coverage rows to STDOUT
package plan

import (
	"encoding/json"
	"fmt"

	"meshplan/internal/link"
	"meshplan/internal/site"
)

// StdoutWriter prints coverage rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single coverage row.
func (w *StdoutWriter) Write(row site.CoverageRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple coverage rows.
func (w *StdoutWriter) WriteBatch(rows []site.CoverageRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteLink prints a reachability edge to STDOUT.
func (w *StdoutWriter) WriteLink(e link.Edge) error {
	data, _ := json.Marshal(e)
	fmt.Println(string(data))
	return nil
}

// WriteLinks prints multiple reachability edges.
func (w *StdoutWriter) WriteLinks(edges []link.Edge) error {
	for _, e := range edges {
		_ = w.WriteLink(e)
	}
	return nil
}
