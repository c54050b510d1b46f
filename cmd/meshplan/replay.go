package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meshplan/internal/plan"
)

var (
	replayInput  string
	replayOutput string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an archived coverage log",
	Long:  "replay reads coverage rows from a JSONL log written by --log-file and renders them again, optionally pushing them into GreptimeDB.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}

		var writer plan.CoverageWriter
		switch replayOutput {
		case "json":
			writer = &plan.StdoutWriter{}
		case "table":
			writer = plan.NewColorStdoutWriter(nil)
		case "db":
			endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
			if endpoint == "" {
				return fmt.Errorf("GREPTIMEDB_ENDPOINT must be set for --output db")
			}
			database := os.Getenv("GREPTIMEDB_DATABASE")
			if database == "" {
				database = "public"
			}
			w, err := plan.NewGreptimeWriter(endpoint, database)
			if err != nil {
				return fmt.Errorf("init greptimedb writer: %w", err)
			}
			writer = w
		default:
			return fmt.Errorf("unknown output %q (want json, table, or db)", replayOutput)
		}

		return plan.ReplayLogFile(replayInput, writer)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to coverage log file")
	replayCmd.Flags().StringVar(&replayOutput, "output", "table", "Output format: json, table, or db")
}
