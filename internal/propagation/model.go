package propagation

import (
	"math"

	"meshplan/internal/site"
)

// Limit records which ceiling capped a predicted range.
type Limit string

const (
	// LimitHorizon means earth curvature capped the range.
	LimitHorizon Limit = "horizon"
	// LimitBudget means the link budget ran out before the horizon.
	LimitBudget Limit = "budget"
)

// Model holds the calibration constants for the coverage estimate. The zero
// value is usable; unset fields fall back to the documented defaults.
type Model struct {
	FsplConstantDb   float64 `yaml:"fspl_constant_db,omitempty" json:"fspl_constant_db,omitempty"`
	GroundLossFactor float64 `yaml:"ground_loss_factor,omitempty" json:"ground_loss_factor,omitempty"`
}

// DefaultModel returns a Model with the documented default constants.
func DefaultModel() Model {
	return Model{
		FsplConstantDb:   DefaultFsplConstantDb,
		GroundLossFactor: DefaultGroundLossFactor,
	}
}

func (m Model) fsplConstant() float64 {
	if m.FsplConstantDb == 0 {
		return DefaultFsplConstantDb
	}
	return m.FsplConstantDb
}

func (m Model) groundLossFactor() float64 {
	if m.GroundLossFactor == 0 {
		return DefaultGroundLossFactor
	}
	return m.GroundLossFactor
}

// PredictRangeKm estimates the usable range between one transmitter site and
// one receiver profile. The result is always finite, >= 0, and never exceeds
// the radio horizon for the two antenna heights. A link budget too poor for
// any coverage yields 0, not an error; invalid heights or frequency are
// rejected before any math runs.
func (m Model) PredictRangeKm(tx site.TransmitterSite, rx site.ReceiverConfig) (float64, error) {
	horizon, err := HorizonKm(tx.AntennaHeightM, rx.AntennaHeightM)
	if err != nil {
		return 0, err
	}
	budget := LinkBudgetDb(tx.TxPowerDbm, tx.TxGainDbi, rx.GainDbi, rx.SensitivityDbm, rx.FadingMarginDb)
	raw, err := fsplRangeKm(budget, tx.FrequencyMHz, m.fsplConstant())
	if err != nil {
		return 0, err
	}
	r := raw * m.groundLossFactor()
	// Pow underflow or a pathological factor must never leak NaN or a
	// negative range to callers.
	if math.IsNaN(r) || r < 0 {
		return 0, nil
	}
	if r > horizon {
		return horizon, nil
	}
	return r, nil
}

// RangeLimit reports whether a predicted range was capped by the horizon or
// by the link budget.
func RangeLimit(rangeKm, horizonKm float64) Limit {
	if rangeKm >= horizonKm {
		return LimitHorizon
	}
	return LimitBudget
}
