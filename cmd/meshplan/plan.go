package main

import (
	"github.com/spf13/cobra"

	"meshplan/internal/config"
	"meshplan/internal/plan"
)

var (
	planConfigPath string
	planSchemaPath string
	planOutput     string
	planLogFile    string
	planLinks      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute coverage for all configured sites",
	Long:  "plan loads a site plan, predicts per-site coverage and link reachability, and emits the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(planConfigPath, planSchemaPath)
		if err != nil {
			return err
		}
		if planLinks {
			cfg.Links.Enabled = true
		}

		if planOutput == "tui" {
			p := plan.NewPlanner(cfg, nil, nil)
			w := plan.NewTUIWriter(p)
			if err := w.WriteBatch(p.Rows()); err != nil {
				return err
			}
			if cfg.Links.Enabled {
				if err := w.WriteLinks(p.Links()); err != nil {
					return err
				}
			}
			w.Wait()
			return nil
		}

		writer, linkWriter, cleanup, err := newWriters(cfg, planOutput, planLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		return plan.NewPlanner(cfg, writer, linkWriter).Run()
	},
}

func init() {
	planCmd.Flags().StringVar(&planConfigPath, "config", "config/plan.yaml", "Path to plan configuration YAML")
	planCmd.Flags().StringVar(&planSchemaPath, "schema", "schemas/plan.cue", "Path to CUE schema file")
	planCmd.Flags().StringVar(&planOutput, "output", "table", "Output mode: table, json, or tui")
	planCmd.Flags().StringVar(&planLogFile, "log-file", "", "Path to export coverage rows (JSONL)")
	planCmd.Flags().BoolVar(&planLinks, "links", false, "Force the site-to-site reachability report on")
}
