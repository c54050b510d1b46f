package propagation

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestHorizonKm(t *testing.T) {
	tests := []struct {
		name    string
		txH     float64
		rxH     float64
		want    float64
		wantErr error
	}{
		{"both at 10m", 10, 10, 3.57 * 2 * math.Sqrt(10), nil},
		{"ground level", 0, 0, 0, nil},
		{"one antenna grounded", 0, 25, 3.57 * 5, nil},
		{"tall tower", 100, 2, 3.57 * (10 + math.Sqrt(2)), nil},
		{"negative tx height", -1, 10, 0, ErrInvalidHeight},
		{"negative rx height", 10, -0.5, 0, ErrInvalidHeight},
		{"NaN tx height", math.NaN(), 10, 0, ErrInvalidHeight},
		{"NaN rx height", 10, math.NaN(), 0, ErrInvalidHeight},
		{"infinite tx height", math.Inf(1), 10, 0, ErrInvalidHeight},
		{"negative infinite rx height", 10, math.Inf(-1), 0, ErrInvalidHeight},
	}
	for _, tc := range tests {
		got, err := HorizonKm(tc.txH, tc.rxH)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if !almostEqual(got, tc.want, 1e-9) {
			t.Errorf("%s: horizon = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestLinkBudgetDb(t *testing.T) {
	// Meshtastic US915 defaults: 30 dBm + 2.15 dBi + 2.15 dBi + 148 - 10.
	got := LinkBudgetDb(30, 2.15, 2.15, -148, 10)
	if !almostEqual(got, 172.3, 1e-9) {
		t.Errorf("budget = %f, want 172.3", got)
	}
}

func TestLinkBudgetDb_MayBeNegative(t *testing.T) {
	got := LinkBudgetDb(-10, 0, 0, -5, 10)
	if got >= 0 {
		t.Errorf("expected negative budget, got %f", got)
	}
}

func TestFsplRangeKm(t *testing.T) {
	// Budget exactly equal to the FSPL constant at 1 MHz inverts to 1 km.
	got, err := FsplRangeKm(DefaultFsplConstantDb, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 1, 1e-9) {
		t.Errorf("range = %f, want 1", got)
	}
}

func TestFsplRangeKm_InvalidFrequency(t *testing.T) {
	for _, f := range []float64{0, -868, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FsplRangeKm(100, f); !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("freq %g: expected ErrInvalidFrequency, got %v", f, err)
		}
	}
}

func TestFsplRangeKm_Unclamped(t *testing.T) {
	// The raw inversion may exceed any horizon; clamping is the model's job.
	got, err := FsplRangeKm(172.3, 906.875)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 1000 {
		t.Errorf("expected an unclamped multi-thousand-km range, got %f", got)
	}
}

func TestFsplRangeKm_PoorBudgetStaysFinite(t *testing.T) {
	got, err := FsplRangeKm(-200, 906.875)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(got) || got < 0 {
		t.Errorf("expected small positive range, got %f", got)
	}
	if got > 1e-9 {
		t.Errorf("expected near-zero range for hopeless budget, got %g", got)
	}
}

func TestApplyGroundLoss(t *testing.T) {
	if got := ApplyGroundLoss(100); !almostEqual(got, 30, 1e-9) {
		t.Errorf("ground-adjusted range = %f, want 30", got)
	}
	if got := ApplyGroundLoss(0); got != 0 {
		t.Errorf("ground-adjusted zero range = %f, want 0", got)
	}
}
