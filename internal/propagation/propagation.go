// Link-budget propagation math for LoRa coverage planning
package propagation

import (
	"errors"
	"fmt"
	"math"
)

// Calibration defaults. Both constants come from the inverted FSPL
// equation for km/MHz units and an empirical ground-level correction;
// they are tunable knobs, not physical law.
const (
	DefaultFsplConstantDb   = 32.44
	DefaultGroundLossFactor = 0.3
)

// Input errors reported at the model boundary.
var (
	ErrInvalidHeight    = errors.New("antenna height must be >= 0 m")
	ErrInvalidFrequency = errors.New("frequency must be > 0 MHz")
)

// HorizonKm returns the radio horizon in kilometers for a pair of antenna
// heights in meters, using the 4/3-earth-radius refraction approximation.
// A height of 0 is valid and contributes nothing to the sum. NaN and Inf
// heights are rejected like negative ones; NaN compares false against any
// bound, so the check must not rely on < alone.
func HorizonKm(txHeightM, rxHeightM float64) (float64, error) {
	if !finiteNonNegative(txHeightM) || !finiteNonNegative(rxHeightM) {
		return 0, fmt.Errorf("%w: tx=%g rx=%g", ErrInvalidHeight, txHeightM, rxHeightM)
	}
	return 3.57 * (math.Sqrt(txHeightM) + math.Sqrt(rxHeightM)), nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// LinkBudgetDb returns the decibel margin available for path loss before the
// signal drops below the receiver sensitivity, after reserving the fading
// margin. A negative result means no viable link and is not an error.
func LinkBudgetDb(txPowerDbm, txGainDbi, rxGainDbi, rxSensitivityDbm, fadingMarginDb float64) float64 {
	return txPowerDbm + txGainDbi + rxGainDbi - rxSensitivityDbm - fadingMarginDb
}

// FsplRangeKm inverts FSPL(dB) = 20log10(d_km) + 20log10(f_MHz) + 32.44 for
// distance. The result is deliberately unclamped; the horizon clamp belongs
// to Model.PredictRangeKm.
func FsplRangeKm(linkBudgetDb, freqMHz float64) (float64, error) {
	return fsplRangeKm(linkBudgetDb, freqMHz, DefaultFsplConstantDb)
}

func fsplRangeKm(linkBudgetDb, freqMHz, fsplConstantDb float64) (float64, error) {
	if math.IsNaN(freqMHz) || math.IsInf(freqMHz, 0) || freqMHz <= 0 {
		return 0, fmt.Errorf("%w: got %g", ErrInvalidFrequency, freqMHz)
	}
	exponent := (linkBudgetDb - 20*math.Log10(freqMHz) - fsplConstantDb) / 20
	return math.Pow(10, exponent), nil
}

// ApplyGroundLoss scales a free-space range down by the default empirical
// factor for ground-level, two-ray-dominated links.
func ApplyGroundLoss(fsplRangeKm float64) float64 {
	return fsplRangeKm * DefaultGroundLossFactor
}
