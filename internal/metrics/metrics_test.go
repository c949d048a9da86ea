package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestRecordRun(t *testing.T) {
	m := newTestMetrics(t)
	finished := time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)

	m.RecordRun(RunSummary{
		Predictions:   150,
		TagEvents:     140,
		Combined:      290,
		SkippedEvents: 3,
		Accuracy:      0.86,
		FinishedAt:    finished,
	}, 120*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.runsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 150, testutil.ToFloat64(m.recordsGenerated.WithLabelValues("satellite_predictions")), 0)
	assert.InDelta(t, 290, testutil.ToFloat64(m.recordsGenerated.WithLabelValues("combined_display")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.skippedEvents), 0)
	assert.InDelta(t, 0.86, testutil.ToFloat64(m.predictionAcc), 1e-9)
	assert.InDelta(t, float64(finished.Unix()), testutil.ToFloat64(m.lastRunTimestamp), 0)
}

func TestRecordFeedFetch(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordFeedFetch(FeedEvents, true, false)
	m.RecordFeedFetch(FeedEvents, true, true)
	m.RecordFeedFetch(FeedProducts, false, false)

	assert.InDelta(t, 1, testutil.ToFloat64(m.feedFetchesTotal.WithLabelValues(FeedEvents, "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.feedFetchesTotal.WithLabelValues(FeedEvents, "cached")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.feedFetchesTotal.WithLabelValues(FeedProducts, "degraded")), 0)
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordHTTPRequest(http.MethodGet, "/api/v1/tag-data", http.StatusOK, time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/tag-data", http.StatusServiceUnavailable, time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/tag-data", "2xx")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/tag-data", "5xx")), 0)
}
