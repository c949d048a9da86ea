package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jengzang/sharktrack-backend-go/internal/config"
	"github.com/jengzang/sharktrack-backend-go/internal/database"
	"github.com/jengzang/sharktrack-backend-go/internal/feed"
	"github.com/jengzang/sharktrack-backend-go/internal/logger"
	"github.com/jengzang/sharktrack-backend-go/internal/metrics"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/performance"
	"github.com/jengzang/sharktrack-backend-go/internal/pipeline"
	"github.com/jengzang/sharktrack-backend-go/internal/repository"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
)

// app carries what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	close  func() error
}

func setup() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog, err := logger.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(log)

	return &app{cfg: cfg, logger: log, close: closeLog}, nil
}

func (a *app) pipelineOptions() pipeline.Options {
	g := a.cfg.Generator
	opts := pipeline.DefaultOptions()
	opts.SampleCount = g.Samples
	opts.Sharks = g.Sharks
	opts.MinEvents = g.MinEvents
	opts.MaxEvents = g.MaxEvents
	opts.EventRadius = g.EventRadius
	opts.Seed = g.Seed
	return opts
}

func (a *app) feedSource() feed.Source {
	if !a.cfg.Feed.Enabled {
		a.logger.Info("external feeds disabled, generating from synthetic inputs only")
		return feed.Static{}
	}
	fc := feed.DefaultConfig()
	fc.EventsURL = a.cfg.Feed.EventsURL
	fc.ProductsURL = a.cfg.Feed.ProductsURL
	fc.EventDays = a.cfg.Feed.EventDays
	fc.Timeout = a.cfg.Feed.Timeout
	fc.CacheTTL = a.cfg.Feed.CacheTTL
	return feed.NewClient(fc, a.logger)
}

func (a *app) dataSources() []models.DataSource {
	return []models.DataSource{
		{
			Name:        "NASA EONET",
			URL:         a.cfg.Feed.EventsURL,
			Description: "Open natural events near the study region, used to bias chlorophyll and temperature",
			Enabled:     a.cfg.Feed.Enabled,
		},
		{
			Name:        "NASA OceanData",
			URL:         a.cfg.Feed.ProductsURL,
			Description: "MODIS-Aqua L3 chlorophyll product count for the last 30 days",
			Enabled:     a.cfg.Feed.Enabled,
		},
		{
			Name:        "Simulated tag telemetry",
			Description: "Feeding events for synthetic tagged sharks validated against the habitat predictions",
			Enabled:     true,
		},
	}
}

// persist writes the CSV files and, when configured, mirrors them into SQLite
func (a *app) persist(ctx context.Context, snap *snapshot.Snapshot) error {
	csvRepo := repository.NewCSVRepository(a.cfg.Generator.OutputDir)
	if err := csvRepo.Save(ctx, snap.Tables); err != nil {
		return err
	}
	a.logger.Info("dataset written", "dir", a.cfg.Generator.OutputDir, "run_id", snap.RunID)

	if a.cfg.Generator.SQLitePath == "" {
		return nil
	}
	return a.withSQLite(ctx, func(repo *repository.SQLiteRepository) error {
		run := repository.RunRecord{
			RunID:        snap.RunID,
			Seed:         snap.Seed,
			GeneratedAt:  snap.GeneratedAt,
			ProductCount: snap.ProductCount,
			EventCount:   snap.EventCount,
		}
		if err := repo.Save(ctx, run, snap.Tables); err != nil {
			return err
		}
		a.logger.Info("dataset mirrored to sqlite", "path", a.cfg.Generator.SQLitePath)
		return nil
	})
}

func (a *app) withSQLite(ctx context.Context, fn func(*repository.SQLiteRepository) error) error {
	db, err := database.Open(database.Config{Path: a.cfg.Generator.SQLitePath})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.NewMigrator(db).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return fn(repository.NewSQLiteRepository(db))
}

// restore rebuilds a snapshot from SQLite when configured, otherwise from the CSV files
func (a *app) restore(ctx context.Context) (*snapshot.Snapshot, error) {
	if a.cfg.Generator.SQLitePath != "" {
		var snap *snapshot.Snapshot
		err := a.withSQLite(ctx, func(repo *repository.SQLiteRepository) error {
			run, err := repo.LoadRun(ctx)
			if err != nil {
				return err
			}
			tables, err := repo.Load(ctx)
			if err != nil {
				return err
			}
			snap = pipeline.Restore(tables, performance.RunInfo{
				RunID:        run.RunID,
				GeneratedAt:  run.GeneratedAt,
				ProductCount: run.ProductCount,
				EventCount:   run.EventCount,
			}, run.Seed)
			return nil
		})
		return snap, err
	}

	tables, err := repository.NewCSVRepository(a.cfg.Generator.OutputDir).Load(ctx)
	if err != nil {
		return nil, err
	}
	var generatedAt time.Time
	for _, p := range tables.Predictions {
		if p.Timestamp.After(generatedAt) {
			generatedAt = p.Timestamp
		}
	}
	return pipeline.Restore(tables, performance.RunInfo{
		RunID:       "restored",
		GeneratedAt: generatedAt,
	}, 0), nil
}

func newMetrics() (*metrics.Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(registry)
}
