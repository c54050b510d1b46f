package main

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meshplan/internal/admin"
	"meshplan/internal/config"
	"meshplan/internal/logging"
	"meshplan/internal/plan"
)

var (
	serveConfigPath string
	serveSchemaPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the coverage map and plan API over HTTP",
	Long:  "serve loads a site plan and exposes an overview page, a coverage map, and JSON endpoints with on-demand recomputation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath, serveSchemaPath)
		if err != nil {
			return err
		}

		log := logging.New()
		p := plan.NewPlanner(cfg, nil, nil)
		srv := admin.NewServer(p)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info("serving coverage plan", "plan_id", p.PlanID(), "addr", serveAddr, "sites", len(p.Sites()))
		if err := srv.Start(ctx, serveAddr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "config/plan.yaml", "Path to plan configuration YAML")
	serveCmd.Flags().StringVar(&serveSchemaPath, "schema", "schemas/plan.cue", "Path to CUE schema file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}
