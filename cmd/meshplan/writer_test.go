package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"meshplan/internal/plan"
	"meshplan/internal/site"
)

func TestNewWritersJSON(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	cw, lw, cleanup, err := newWriters(nil, "json", "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := cw.(*plan.StdoutWriter); !ok {
		t.Fatalf("expected *plan.StdoutWriter, got %T", cw)
	}
	if _, ok := lw.(*plan.StdoutWriter); !ok {
		t.Fatalf("expected link writer *plan.StdoutWriter, got %T", lw)
	}
}

func TestNewWritersTable(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	cw, _, cleanup, err := newWriters(nil, "table", "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := cw.(*plan.ColorStdoutWriter); !ok {
		t.Fatalf("expected *plan.ColorStdoutWriter, got %T", cw)
	}
}

func TestNewWritersUnknownOutput(t *testing.T) {
	if _, _, _, err := newWriters(nil, "yaml", ""); err == nil {
		t.Fatalf("expected error for unknown output mode")
	}
}

func TestNewWritersLogFile(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "coverage.log")
	cw, lw, cleanup, err := newWriters(nil, "json", path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := cw.(*plan.MultiWriter); !ok {
		t.Fatalf("expected *plan.MultiWriter, got %T", cw)
	}
	if _, ok := lw.(*plan.MultiWriter); !ok {
		t.Fatalf("expected link writer *plan.MultiWriter, got %T", lw)
	}
	row := site.CoverageRow{PlanID: "p1", SiteID: "s1", SiteName: "ridge", RangeKm: 12.5, Valid: true, Timestamp: time.Now()}
	if err := cw.Write(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
}
