package main

import (
	"github.com/spf13/cobra"

	"meshplan/internal/dashboard"
	"meshplan/internal/logging"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards for coverage data",
	Long:  "dashboard renders the bundled Grafana dashboard templates, resolving datasource UIDs from the environment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dashboard.Render(dashboardOut); err != nil {
			return err
		}
		logging.New().Info("dashboards rendered", "dir", dashboardOut)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "build", "Output directory for rendered dashboards")
}
