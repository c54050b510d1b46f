// Site and receiver value types shared by planner, writers, and server
package site

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// TransmitterSite describes one planned node location and its radio. Values
// are copied into the engine and never mutated by it.
type TransmitterSite struct {
	ID             string  `yaml:"id,omitempty" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Lat            float64 `yaml:"lat" json:"lat"`
	Lon            float64 `yaml:"lon" json:"lon"`
	AntennaHeightM float64 `yaml:"antenna_height_m" json:"antenna_height_m"`
	TxPowerDbm     float64 `yaml:"tx_power_dbm" json:"tx_power_dbm"`
	TxGainDbi      float64 `yaml:"tx_gain_dbi" json:"tx_gain_dbi"`
	FrequencyMHz   float64 `yaml:"frequency_mhz" json:"frequency_mhz"`
}

// EnsureID fills in a generated ID when the config omitted one.
func (s *TransmitterSite) EnsureID() {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
}

// ReceiverConfig is the notional receiver profile applied uniformly to all
// sites during one coverage computation.
type ReceiverConfig struct {
	AntennaHeightM float64 `yaml:"antenna_height_m" json:"antenna_height_m"`
	GainDbi        float64 `yaml:"gain_dbi" json:"gain_dbi"`
	SensitivityDbm float64 `yaml:"sensitivity_dbm" json:"sensitivity_dbm"`
	FadingMarginDb float64 `yaml:"fading_margin_db" json:"fading_margin_db"`
}

// DefaultReceiver matches a typical LoRa SF12 receiver profile.
func DefaultReceiver() ReceiverConfig {
	return ReceiverConfig{
		AntennaHeightM: 10,
		GainDbi:        2.15,
		SensitivityDbm: -148,
		FadingMarginDb: 10,
	}
}

// CoverageResult is the per-site engine output. A site whose parameters were
// rejected carries the error here; the rest of the batch is unaffected.
type CoverageResult struct {
	SiteID      string  `json:"site_id"`
	RangeKm     float64 `json:"range_km"`
	RangeMeters float64 `json:"range_m"`
	Limit       string  `json:"limit,omitempty"`
	Err         error   `json:"-"`
}

// CoverageRow represents one coverage record for GreptimeDB.
type CoverageRow struct {
	PlanID    string    `json:"plan_id"`   // TAG
	SiteID    string    `json:"site_id"`   // TAG
	SiteName  string    `json:"site_name"` // FIELD
	Lat       float64   `json:"lat"`       // FIELD
	Lon       float64   `json:"lon"`       // FIELD
	RangeKm   float64   `json:"range_km"`  // FIELD
	RangeM    float64   `json:"range_m"`   // FIELD
	Limit     string    `json:"limit"`     // FIELD
	Valid     bool      `json:"valid"`     // FIELD
	Error     string    `json:"error"`     // FIELD
	Timestamp time.Time `json:"ts"`        // TIME INDEX
}

// CoverageTableName holds the table name used when writing to GreptimeDB.
// It defaults to "mesh_coverage" but can be overridden via the
// MESHPLAN_TABLE environment variable.
var CoverageTableName = func() string {
	if env := os.Getenv("MESHPLAN_TABLE"); env != "" {
		return env
	}
	return "mesh_coverage"
}()

func (CoverageRow) TableName() string {
	return CoverageTableName
}
