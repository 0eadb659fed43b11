package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/skillgap-analyzer/internal/affiliate"
	"github.com/jonathan/skillgap-analyzer/internal/analyzer"
	"github.com/jonathan/skillgap-analyzer/internal/config"
	"github.com/jonathan/skillgap-analyzer/internal/llm"
	"github.com/jonathan/skillgap-analyzer/internal/occupation"
	"github.com/jonathan/skillgap-analyzer/internal/store"
	"github.com/jonathan/skillgap-analyzer/internal/transfer"
)

// deps is the wired object graph shared by the subcommands.
type deps struct {
	analyzer    *analyzer.Analyzer
	tracker     *affiliate.Tracker
	catalog     affiliate.Catalog
	occupations occupation.Provider
	llmClient   llm.Client
	pg          *store.Postgres
}

// loadConfig merges the optional config file with environment variables and
// validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg = cfg.MergeWithEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildDeps wires storage, the AI client, the taxonomy provider, and the
// analysis pipeline from configuration. Every collaborator is optional except
// storage, which falls back to in-memory for one-shot runs.
func buildDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{}

	var st store.AnalysisStore
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		d.pg = pg
		st = pg
	} else {
		slog.Warn("no database configured, analyses will not survive restarts")
		st = store.NewMemory()
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Provider == string(llm.ProviderOpenAI) {
		llmConfig = llm.DefaultOpenAIConfig()
	}

	modelID := "baseline"
	if cfg.APIKey() != "" {
		client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey())
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		d.llmClient = client
		modelID = client.GetModel(llm.TierStandard)
	} else {
		slog.Warn("no AI key configured, transfer matching runs on the baseline matcher")
	}

	if cfg.TaxonomyURL != "" {
		d.occupations = occupation.NewCachedProvider(
			occupation.NewHTTPProvider(cfg.TaxonomyURL, cfg.TaxonomyVersion),
			cfg.RedisURL, occupation.DefaultCacheTTL)
	}
	if cfg.CatalogURL != "" {
		d.catalog = affiliate.NewHTTPCatalog(cfg.CatalogURL)
	}

	matcher := transfer.NewMatcher(d.llmClient,
		transfer.NewMemoCache(transfer.DefaultMemoCapacity, time.Now), nil)

	d.analyzer = analyzer.New(st, matcher, d.occupations, modelID)
	d.tracker = affiliate.NewTracker(st, nil)
	return d, nil
}

// close releases held connections.
func (d *deps) close() {
	if d.llmClient != nil {
		if err := d.llmClient.Close(); err != nil {
			slog.Warn("failed to close AI client", slog.Any("error", err))
		}
	}
	if d.pg != nil {
		d.pg.Close()
	}
}
