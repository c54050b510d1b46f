package plan

import (
	"meshplan/internal/link"
	"meshplan/internal/site"
)

// MultiWriter fans coverage rows and link edges out to multiple writers.
type MultiWriter struct {
	covWriters  []CoverageWriter
	linkWriters []LinkWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(cws []CoverageWriter, lws []LinkWriter) *MultiWriter {
	return &MultiWriter{covWriters: cws, linkWriters: lws}
}

// Write sends a coverage row to all writers.
func (mw *MultiWriter) Write(row site.CoverageRow) error {
	for _, w := range mw.covWriters {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple coverage rows to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteBatch(rows []site.CoverageRow) error {
	for _, w := range mw.covWriters {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteLink sends a link edge to all link writers.
func (mw *MultiWriter) WriteLink(e link.Edge) error {
	for _, w := range mw.linkWriters {
		if err := w.WriteLink(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteLinks sends multiple link edges to all link writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteLinks(edges []link.Edge) error {
	for _, w := range mw.linkWriters {
		if bw, ok := w.(batchLinkWriter); ok {
			if err := bw.WriteLinks(edges); err != nil {
				return err
			}
			continue
		}
		for _, e := range edges {
			if err := w.WriteLink(e); err != nil {
				return err
			}
		}
	}
	return nil
}
