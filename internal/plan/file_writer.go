package plan

import (
	"encoding/json"
	"os"

	"meshplan/internal/link"
	"meshplan/internal/site"
)

// FileWriter writes coverage rows and link edges to JSONL files.
type FileWriter struct {
	coverageFile *os.File
	linkFile     *os.File
	coverageEnc  *json.Encoder
	linkEnc      *json.Encoder
}

// NewFileWriter opens the coverage log and, when linkPath is non-empty, a
// separate link log.
func NewFileWriter(coveragePath, linkPath string) (*FileWriter, error) {
	cf, err := os.OpenFile(coveragePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{coverageFile: cf, coverageEnc: json.NewEncoder(cf)}

	if linkPath != "" {
		lf, err := os.OpenFile(linkPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			cf.Close()
			return nil, err
		}
		fw.linkFile = lf
		fw.linkEnc = json.NewEncoder(lf)
	}
	return fw, nil
}

// Write appends a single coverage row.
func (w *FileWriter) Write(row site.CoverageRow) error {
	return w.coverageEnc.Encode(row)
}

// WriteBatch appends multiple coverage rows.
func (w *FileWriter) WriteBatch(rows []site.CoverageRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteLink appends a reachability edge when a link log is open.
func (w *FileWriter) WriteLink(e link.Edge) error {
	if w.linkEnc == nil {
		return nil
	}
	return w.linkEnc.Encode(e)
}

// WriteLinks appends multiple reachability edges.
func (w *FileWriter) WriteLinks(edges []link.Edge) error {
	for _, e := range edges {
		if err := w.WriteLink(e); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (w *FileWriter) Close() error {
	err := w.coverageFile.Close()
	if w.linkFile != nil {
		if lerr := w.linkFile.Close(); err == nil {
			err = lerr
		}
	}
	return err
}
