// Package pipeline runs one end-to-end dataset generation: feeds, predictions,
// telemetry, the combined table and the performance summary.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
	"github.com/jengzang/sharktrack-backend-go/internal/environment"
	"github.com/jengzang/sharktrack-backend-go/internal/feed"
	"github.com/jengzang/sharktrack-backend-go/internal/habitat"
	"github.com/jengzang/sharktrack-backend-go/internal/metrics"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/performance"
	"github.com/jengzang/sharktrack-backend-go/internal/prediction"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
	"github.com/jengzang/sharktrack-backend-go/internal/telemetry"
)

// DefaultSampleCount is the number of satellite predictions per run
const DefaultSampleCount = 150

// Options configures a run
type Options struct {
	Region      spatial.Region
	Hotspots    []models.Hotspot
	Species     []models.SpeciesProfile
	SampleCount int
	Sharks      int
	MinEvents   int
	MaxEvents   int
	EventRadius float64
	// Seed fixes the random stream; 0 derives one from the clock
	Seed uint64
}

// DefaultOptions returns the Sydney configuration
func DefaultOptions() Options {
	return Options{
		Region:      environment.DefaultRegion(),
		Hotspots:    environment.DefaultHotspots,
		Species:     telemetry.DefaultSpecies,
		SampleCount: DefaultSampleCount,
		Sharks:      telemetry.DefaultSharkCount,
		MinEvents:   telemetry.DefaultMinEvents,
		MaxEvents:   telemetry.DefaultMaxEvents,
		EventRadius: environment.DefaultEventRadius,
	}
}

// Runner produces snapshots
type Runner struct {
	opts    Options
	source  feed.Source
	metrics *metrics.Metrics
	logger  *slog.Logger
	clock   func() time.Time
	newID   func() string
}

// NewRunner creates a runner. metrics may be nil.
func NewRunner(opts Options, source feed.Source, m *metrics.Metrics, logger *slog.Logger) *Runner {
	if source == nil {
		source = feed.Static{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		opts:    opts,
		source:  source,
		metrics: m,
		logger:  logger.With("component", "pipeline"),
		clock:   time.Now,
		newID:   uuid.NewString,
	}
}

// WithClock replaces the clock used for the run timestamp
func (r *Runner) WithClock(clock func() time.Time) *Runner {
	r.clock = clock
	return r
}

// Options returns the run configuration
func (r *Runner) Options() Options {
	return r.opts
}

// Run executes one generation. Feed failures degrade to empty inputs and never fail
// the run; only a cancelled context does.
func (r *Runner) Run(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		if r.metrics != nil {
			r.metrics.RecordRunError()
		}
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	start := time.Now()
	now := r.clock().UTC()
	seed := r.opts.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	runID := r.newID()
	log := r.logger.With("run_id", runID, "seed", seed)
	log.Info("starting generation run")

	events := r.source.FetchEvents(ctx, r.opts.Region)
	products := r.source.CountProducts(ctx, now)
	if r.metrics != nil {
		r.metrics.RecordFeedFetch(metrics.FeedEvents, events.OK, events.Cached)
		r.metrics.RecordFeedFetch(metrics.FeedProducts, products.OK, products.Cached)
	}
	if !events.OK {
		log.Warn("continuing without environmental events", "reason", events.Reason)
	}
	if !products.OK {
		log.Warn("continuing without product count", "reason", products.Reason)
	}

	field := environment.NewEventField(events.Events, r.opts.EventRadius)
	if n := field.Skipped() + events.Malformed; n > 0 {
		log.Warn("dropped events with malformed geometry", "events", n)
		if r.metrics != nil {
			r.metrics.RecordMalformedEvents(n)
		}
	}

	s := sampling.New(seed)

	gen := prediction.NewGenerator(
		environment.NewGeoSampler(r.opts.Region, r.opts.Hotspots, r.opts.SampleCount),
		environment.NewFieldSynthesizer(r.opts.Region, field, now),
		habitat.NewScorer(),
	)
	predictions := gen.Generate(s, now)

	sim := telemetry.NewSimulator(r.opts.Region)
	sim.Species = r.opts.Species
	sim.Sharks = r.opts.Sharks
	sim.MinEvents = r.opts.MinEvents
	sim.MaxEvents = r.opts.MaxEvents
	tagEvents, simStats := sim.Simulate(predictions, s, now)
	if simStats.SkippedEvents > 0 {
		log.Warn("telemetry events skipped for lack of candidate predictions", "skipped", simStats.SkippedEvents)
	}

	tables := dataset.NewTables(predictions, tagEvents)
	perf := performance.Analyze(tables)
	stats := performance.SystemStats(tables, performance.RunInfo{
		RunID:        runID,
		GeneratedAt:  now,
		ProductCount: products.Count,
		EventCount:   len(events.Events),
	})

	snap := &snapshot.Snapshot{
		RunID:        runID,
		Seed:         seed,
		GeneratedAt:  now,
		Tables:       tables,
		Metrics:      perf,
		Stats:        stats,
		ProductCount: products.Count,
		EventCount:   len(events.Events),
		FeedDegraded: !events.OK || !products.OK,
		Simulation:   simStats,
	}

	if r.metrics != nil {
		r.metrics.RecordRun(metrics.RunSummary{
			Predictions:     len(predictions),
			TagEvents:       len(tagEvents),
			Combined:        len(tables.Combined),
			SkippedEvents:   simStats.SkippedEvents,
			RelaxedSearches: simStats.RelaxedSearches,
			Accuracy:        stats.PredictionAccuracy,
			FinishedAt:      now,
		}, time.Since(start))
	}

	log.Info("generation run complete",
		"predictions", len(predictions),
		"tag_events", len(tagEvents),
		"accuracy", stats.PredictionAccuracy,
		"duration", time.Since(start))

	return snap, nil
}
