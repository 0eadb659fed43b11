package main

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillgap-analyzer/internal/occupation"
	"github.com/jonathan/skillgap-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for skill gap analysis, progress tracking, and course recommendations.`,
	RunE:  runServe,
}

var (
	serveConfigPath    string
	servePort          int
	serveRefreshSchedule string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveRefreshSchedule, "refresh-schedule", "@daily", "Cron schedule for the occupation cache refresh sweep")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cfg.Port != 0 {
		servePort = cfg.Port
	}

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	// Periodic sweep: drop cached taxonomy entries so the next lookups pick
	// up the provider's current data.
	if cached, ok := d.occupations.(*occupation.CachedProvider); ok {
		c := cron.New()
		if _, err := c.AddFunc(serveRefreshSchedule, func() {
			slog.Info("refreshing occupation cache")
			cached.Refresh()
		}); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
	}

	srv := server.New(server.Config{Port: servePort}, server.Deps{
		Analyzer:    d.analyzer,
		Tracker:     d.tracker,
		Catalog:     d.catalog,
		Occupations: d.occupations,
	})
	return srv.Start()
}
