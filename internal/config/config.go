// YAML plan loader with CUE schema validation
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"meshplan/internal/propagation"
	"meshplan/internal/site"
)

// Links holds options for the site-to-site reachability report.
type Links struct {
	Enabled bool `yaml:"enabled"`
}

// PlanConfig is the root configuration for one coverage plan.
type PlanConfig struct {
	PlanID   string                 `yaml:"plan_id"`
	Sites    []site.TransmitterSite `yaml:"sites"`
	Receiver *site.ReceiverConfig   `yaml:"receiver,omitempty"`
	Model    propagation.Model      `yaml:"model,omitempty"`
	Links    Links                  `yaml:"links,omitempty"`
}

// ReceiverProfile returns the configured receiver or the LoRa SF12 default.
func (c *PlanConfig) ReceiverProfile() site.ReceiverConfig {
	if c.Receiver != nil {
		return *c.Receiver
	}
	return site.DefaultReceiver()
}

// ApplyDefaults fills generated site IDs and a plan ID when omitted.
func (c *PlanConfig) ApplyDefaults() {
	if c.PlanID == "" {
		c.PlanID = "plan-01"
	}
	for i := range c.Sites {
		c.Sites[i].EnsureID()
	}
}

// Load loads a YAML plan and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*PlanConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg PlanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Sites) == 0 {
		return nil, fmt.Errorf("config %s declares no sites", configPath)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}
