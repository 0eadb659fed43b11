package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillgap-analyzer/internal/roadmap"
)

var progressCmd = &cobra.Command{
	Use:   "progress <analysis-id>",
	Short: "Update or show completion progress for an analysis",
	Long:  `Show the progress report for a stored analysis, or update the completion percentage with --set.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

var (
	progressConfigPath string
	progressSet        float64
)

func init() {
	progressCmd.Flags().StringVar(&progressConfigPath, "config", "", "Path to config.json file")
	progressCmd.Flags().Float64Var(&progressSet, "set", -1, "New completion percentage (0-100)")
	rootCmd.AddCommand(progressCmd)
}

func runProgress(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid analysis ID %q: %w", args[0], err)
	}

	cfg, err := loadConfig(progressConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("progress requires a configured database")
	}

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	if progressSet >= 0 {
		report, err := d.analyzer.UpdateProgress(ctx, id, progressSet)
		if err != nil {
			return err
		}
		return printJSON(report)
	}

	analysis, err := d.analyzer.Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(roadmap.ProgressReport(analysis))
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
