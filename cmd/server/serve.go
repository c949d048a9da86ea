package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jengzang/sharktrack-backend-go/internal/api"
	"github.com/jengzang/sharktrack-backend-go/internal/middleware"
	"github.com/jengzang/sharktrack-backend-go/internal/pipeline"
	"github.com/jengzang/sharktrack-backend-go/internal/service"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
)

func newServeCmd() *cobra.Command {
	var (
		load     bool
		generate bool
		refresh  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset over HTTP",
		Long:  "Serve generates a dataset (or loads the last saved one with --load) and exposes it read-only under /api/v1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			if cmd.Flags().Changed("refresh") {
				a.cfg.Server.RefreshInterval = refresh
			}
			gin.SetMode(a.cfg.Server.Mode)

			m, err := newMetrics()
			if err != nil {
				return fmt.Errorf("failed to create metrics: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := snapshot.NewStore()
			runner := pipeline.NewRunner(a.pipelineOptions(), a.feedSource(), m, a.logger)
			limiter := middleware.NewRateLimiter(a.cfg.Server.RateLimit, a.cfg.Server.RateBurst)
			go limiter.Run(ctx.Done())

			router := api.SetupRouter(api.Dependencies{
				Service:     service.NewDatasetService(store, a.dataSources()),
				Metrics:     m,
				RateLimiter: limiter,
				Logger:      a.logger,
			})

			srv := &http.Server{
				Addr:         a.cfg.ServerAddr(),
				Handler:      router,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}

			// The API answers 503 until the first snapshot is published
			go a.populate(ctx, store, runner, load)

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting HTTP server", "addr", srv.Addr, "mode", a.cfg.Server.Mode)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			case <-ctx.Done():
			}

			a.logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			a.logger.Info("server exited")
			return nil
		},
	}

	cmd.Flags().BoolVar(&load, "load", false, "serve the last saved dataset instead of generating a new one")
	cmd.Flags().BoolVar(&generate, "generate", true, "generate a fresh dataset on startup")
	cmd.MarkFlagsMutuallyExclusive("load", "generate")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "regenerate the dataset on this interval (0 disables)")
	return cmd
}

// populate publishes the first snapshot and then, if configured, refreshes it on a ticker
func (a *app) populate(ctx context.Context, store *snapshot.Store, runner *pipeline.Runner, load bool) {
	if load {
		snap, err := a.restore(ctx)
		if err == nil {
			store.Swap(snap)
			a.logger.Info("loaded saved dataset", "run_id", snap.RunID, "tag_events", len(snap.Tables.TagEvents))
		} else {
			a.logger.Warn("failed to load saved dataset, generating instead", "error", err)
			load = false
		}
	}
	if !load {
		a.regenerate(ctx, store, runner)
	}

	interval := a.cfg.Server.RefreshInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.regenerate(ctx, store, runner)
		}
	}
}

func (a *app) regenerate(ctx context.Context, store *snapshot.Store, runner *pipeline.Runner) {
	snap, err := runner.Run(ctx)
	if err != nil {
		a.logger.Error("generation run failed", "error", err)
		return
	}
	if err := a.persist(ctx, snap); err != nil {
		a.logger.Error("failed to save dataset", "run_id", snap.RunID, "error", err)
	}
	store.Swap(snap)
}
