package plan

import (
	"strings"
	"testing"
)

func TestReplayLog(t *testing.T) {
	log := `{"plan_id":"p1","site_id":"s1","site_name":"a","range_km":22.58,"range_m":22580,"valid":true}
{"plan_id":"p1","site_id":"s2","site_name":"b","range_km":1.3,"range_m":1300,"valid":true}
`
	writer := &MockWriter{}
	if err := ReplayLog(strings.NewReader(log), writer); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(writer.Rows) != 2 {
		t.Fatalf("expected 2 replayed rows, got %d", len(writer.Rows))
	}
	if writer.Rows[0].SiteID != "s1" || writer.Rows[1].RangeKm != 1.3 {
		t.Errorf("replay order or values wrong: %+v", writer.Rows)
	}
}

func TestReplayLog_BadLine(t *testing.T) {
	writer := &MockWriter{}
	if err := ReplayLog(strings.NewReader("not-json\n"), writer); err == nil {
		t.Errorf("expected decode error")
	}
}
