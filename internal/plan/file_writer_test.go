package plan

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meshplan/internal/link"
	"meshplan/internal/site"
)

func TestFileWriter_WritesCoverageAndLinks(t *testing.T) {
	dir := t.TempDir()
	covPath := filepath.Join(dir, "coverage.jsonl")
	linkPath := filepath.Join(dir, "links.jsonl")

	fw, err := NewFileWriter(covPath, linkPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}

	rows := []site.CoverageRow{
		{PlanID: "p1", SiteID: "s1", SiteName: "a", RangeKm: 22.58, RangeM: 22580, Valid: true, Timestamp: time.Unix(0, 0).UTC()},
		{PlanID: "p1", SiteID: "s2", SiteName: "b", Valid: false, Error: "frequency must be > 0 MHz: got 0", Timestamp: time.Unix(0, 0).UTC()},
	}
	if err := fw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := fw.WriteLink(link.Edge{FromID: "s1", ToID: "s2", DistanceKm: 9, RangeKm: 22.58, Reachable: true}); err != nil {
		t.Fatalf("WriteLink: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(covPath)
	if err != nil {
		t.Fatalf("open coverage log: %v", err)
	}
	defer f.Close()

	var got []site.CoverageRow
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var row site.CoverageRow
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("bad JSONL line: %v", err)
		}
		got = append(got, row)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows on disk, got %d", len(got))
	}
	if got[0].SiteID != "s1" || got[1].Error == "" {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	if fi, err := os.Stat(linkPath); err != nil || fi.Size() == 0 {
		t.Errorf("expected non-empty link log, err=%v", err)
	}
}

func TestFileWriter_LinkLogOptional(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "coverage.jsonl"), "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	// No link file open; writing a link must be a no-op, not a panic.
	if err := fw.WriteLink(link.Edge{FromID: "a", ToID: "b"}); err != nil {
		t.Errorf("WriteLink without link log: %v", err)
	}
}
