package site

import "testing"

func TestDefaultReceiver(t *testing.T) {
	rx := DefaultReceiver()
	if rx.AntennaHeightM != 10 || rx.GainDbi != 2.15 || rx.SensitivityDbm != -148 || rx.FadingMarginDb != 10 {
		t.Errorf("unexpected default receiver profile: %+v", rx)
	}
}

func TestEnsureID(t *testing.T) {
	s := TransmitterSite{Name: "north-ridge"}
	s.EnsureID()
	if s.ID == "" {
		t.Errorf("expected generated ID")
	}

	s2 := TransmitterSite{ID: "fixed", Name: "south-gap"}
	s2.EnsureID()
	if s2.ID != "fixed" {
		t.Errorf("EnsureID overwrote explicit ID: %s", s2.ID)
	}
}

func TestCoverageRowTableName(t *testing.T) {
	row := CoverageRow{}
	if row.TableName() != CoverageTableName {
		t.Errorf("table name mismatch: %s", row.TableName())
	}
}
