package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jengzang/sharktrack-backend-go/internal/feed"
	"github.com/jengzang/sharktrack-backend-go/internal/pipeline"
)

func newGenerateCmd() *cobra.Command {
	var (
		seed   uint64
		out    string
		sqlite string
		noFeed bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the dataset once and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			if cmd.Flags().Changed("seed") {
				a.cfg.Generator.Seed = seed
			}
			if out != "" {
				a.cfg.Generator.OutputDir = out
			}
			if sqlite != "" {
				a.cfg.Generator.SQLitePath = sqlite
			}

			source := a.feedSource()
			if noFeed {
				source = feed.Static{}
			}

			m, err := newMetrics()
			if err != nil {
				return fmt.Errorf("failed to create metrics: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			snap, err := pipeline.NewRunner(a.pipelineOptions(), source, m, a.logger).Run(ctx)
			if err != nil {
				return err
			}
			if err := a.persist(ctx, snap); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"run %s (seed %d): %d predictions, %d tag events, %d combined rows, accuracy %.1f%%\n",
				snap.RunID, snap.Seed,
				len(snap.Tables.Predictions), len(snap.Tables.TagEvents), len(snap.Tables.Combined),
				snap.Stats.PredictionAccuracy*100)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 derives one from the clock)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for the CSV files")
	cmd.Flags().StringVar(&sqlite, "sqlite", "", "also mirror the tables into this SQLite database")
	cmd.Flags().BoolVar(&noFeed, "no-feed", false, "skip the external feeds")
	return cmd
}
