// Package metrics provides Prometheus metrics for the generation pipeline and the query service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Feed names used as label values
const (
	FeedEvents   = "events"
	FeedProducts = "products"
)

// Metrics contains the Prometheus collectors of the service
type Metrics struct {
	registry *prometheus.Registry

	// Pipeline metrics
	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	recordsGenerated *prometheus.GaugeVec
	skippedEvents    prometheus.Counter
	relaxedSearches  prometheus.Counter
	predictionAcc    prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
	feedFetchesTotal *prometheus.CounterVec
	malformedEvents  prometheus.Counter

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates and registers the metrics on registry
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) initMetrics() {
	m.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharktrack_pipeline_runs_total",
			Help: "Total number of dataset generation runs",
		},
		[]string{"status"}, // success, error
	)

	m.runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sharktrack_pipeline_run_duration_seconds",
			Help:    "Time taken by one generation run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	m.recordsGenerated = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sharktrack_records_generated",
			Help: "Rows produced by the last run, per table",
		},
		[]string{"table"},
	)

	m.skippedEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharktrack_telemetry_skipped_events_total",
		Help: "Telemetry iterations skipped because no candidate prediction existed",
	})

	m.relaxedSearches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharktrack_telemetry_relaxed_searches_total",
		Help: "Candidate searches that fell back to the relaxed confidence filter",
	})

	m.predictionAcc = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sharktrack_prediction_accuracy",
		Help: "Fraction of tag events confirming the predicted prey in the last run",
	})

	m.lastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sharktrack_last_run_timestamp_seconds",
		Help: "Unix time of the last successful run",
	})

	m.feedFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharktrack_feed_fetches_total",
			Help: "Total number of external feed fetches",
		},
		[]string{"feed", "status"}, // status: success, cached, degraded
	)

	m.malformedEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharktrack_feed_malformed_events_total",
		Help: "Environmental events dropped as undecodable or with malformed geometry",
	})

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharktrack_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sharktrack_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.runsTotal,
		m.runDuration,
		m.recordsGenerated,
		m.skippedEvents,
		m.relaxedSearches,
		m.predictionAcc,
		m.lastRunTimestamp,
		m.feedFetchesTotal,
		m.malformedEvents,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	}
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// RunSummary is what a finished run reports
type RunSummary struct {
	Predictions     int
	TagEvents       int
	Combined        int
	SkippedEvents   int
	RelaxedSearches int
	Accuracy        float64
	FinishedAt      time.Time
}

// RecordRun records a successful run
func (m *Metrics) RecordRun(s RunSummary, duration time.Duration) {
	m.runsTotal.WithLabelValues("success").Inc()
	m.runDuration.Observe(duration.Seconds())
	m.recordsGenerated.WithLabelValues("satellite_predictions").Set(float64(s.Predictions))
	m.recordsGenerated.WithLabelValues("tag_telemetry").Set(float64(s.TagEvents))
	m.recordsGenerated.WithLabelValues("combined_display").Set(float64(s.Combined))
	m.skippedEvents.Add(float64(s.SkippedEvents))
	m.relaxedSearches.Add(float64(s.RelaxedSearches))
	m.predictionAcc.Set(s.Accuracy)
	m.lastRunTimestamp.Set(float64(s.FinishedAt.Unix()))
}

// RecordRunError records a failed run
func (m *Metrics) RecordRunError() {
	m.runsTotal.WithLabelValues("error").Inc()
}

// RecordFeedFetch records the outcome of one feed fetch
func (m *Metrics) RecordFeedFetch(feed string, ok, cached bool) {
	status := "success"
	switch {
	case !ok:
		status = "degraded"
	case cached:
		status = "cached"
	}
	m.feedFetchesTotal.WithLabelValues(feed, status).Inc()
}

// RecordMalformedEvents counts events dropped as undecodable or with malformed geometry
func (m *Metrics) RecordMalformedEvents(n int) {
	m.malformedEvents.Add(float64(n))
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
