package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sharktrack-backend-go/internal/feed"
	"github.com/jengzang/sharktrack-backend-go/internal/metrics"
	"github.com/jengzang/sharktrack-backend-go/internal/middleware"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/pipeline"
	"github.com/jengzang/sharktrack-backend-go/internal/service"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
	"github.com/jengzang/sharktrack-backend-go/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *snapshot.Store
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	store := snapshot.NewStore()
	svc := service.NewDatasetService(store, []models.DataSource{
		{Name: "EONET", URL: feed.DefaultEventsURL, Enabled: true},
	})
	return &testServer{
		router: SetupRouter(Dependencies{
			Service:     svc,
			Metrics:     m,
			RateLimiter: limiter,
			Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		}),
		store: store,
	}
}

func (s *testServer) generate(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	opts := pipeline.DefaultOptions()
	opts.Seed = 99
	snap, err := pipeline.NewRunner(opts, feed.Static{Products: 2}, nil, slog.New(slog.NewTextHandler(io.Discard, nil))).
		WithClock(func() time.Time { return time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC) }).
		Run(t.Context())
	require.NoError(t, err)
	s.store.Swap(snap)
	return snap
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestRouter_UnavailableBeforeGeneration(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{
		"/api/v1/satellite-predictions",
		"/api/v1/tag-data",
		"/api/v1/combined-events",
		"/api/v1/system-stats",
		"/api/v1/performance",
	} {
		w := s.get(path)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)

		var body response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusServiceUnavailable, body.Code)
	}

	assert.Equal(t, http.StatusOK, s.get("/api/v1/data-sources").Code)

	w := s.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "generating")
}

func TestRouter_ServesSnapshot(t *testing.T) {
	s := newTestServer(t, nil)
	snap := s.generate(t)

	w := s.get("/api/v1/satellite-predictions?pageSize=10")
	require.Equal(t, http.StatusOK, w.Code)
	preds := decode[models.PageResponse[models.PredictionRow]](t, w)
	assert.Equal(t, len(snap.Tables.Predictions), preds.Total)
	assert.Len(t, preds.Data, 10)
	assert.Equal(t, "SAT_001", preds.Data[0].PredictionID)

	w = s.get("/api/v1/satellite-predictions?quality=high")
	require.Equal(t, http.StatusOK, w.Code)
	for _, row := range decode[models.PageResponse[models.PredictionRow]](t, w).Data {
		assert.Equal(t, "high", row.HabitatQuality)
	}

	w = s.get("/api/v1/tag-data?accuracy=correct")
	require.Equal(t, http.StatusOK, w.Code)
	for _, row := range decode[models.PageResponse[models.TelemetryRow]](t, w).Data {
		assert.Equal(t, models.AccuracyCorrect, row.PredictionAccuracy)
	}

	w = s.get("/api/v1/combined-events?markerType=prediction&pageSize=1000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, len(snap.Tables.Predictions), decode[models.PageResponse[models.CombinedRecord]](t, w).Total)

	w = s.get("/api/v1/system-stats")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.SystemStats](t, w)
	assert.Equal(t, snap.RunID, stats.RunID)
	assert.Equal(t, 2, stats.SatelliteProductsFound)
	assert.Equal(t, "2026-03-15T06:00:00Z", stats.GeneratedAt)

	w = s.get("/api/v1/performance")
	require.Equal(t, http.StatusOK, w.Code)
	perf := decode[models.PerformanceMetrics](t, w)
	assert.Equal(t, len(snap.Tables.TagEvents), perf.TotalValidations)

	assert.Contains(t, s.get("/health").Body.String(), `"status":"ok"`)
}

func TestRouter_PageBeyondEnd(t *testing.T) {
	s := newTestServer(t, nil)
	s.generate(t)

	for _, path := range []string{
		"/api/v1/satellite-predictions?page=922337203685477580",
		"/api/v1/tag-data?page=922337203685477580&pageSize=1000",
		"/api/v1/combined-events?page=9223372036854775807",
	} {
		w := s.get(path)
		require.Equal(t, http.StatusOK, w.Code, path)
		page := decode[models.PageResponse[json.RawMessage]](t, w)
		assert.Empty(t, page.Data, path)
		assert.Positive(t, page.Total, path)
	}
}

func TestRouter_BadFilters(t *testing.T) {
	s := newTestServer(t, nil)
	s.generate(t)

	assert.Equal(t, http.StatusBadRequest, s.get("/api/v1/satellite-predictions?quality=great").Code)
	assert.Equal(t, http.StatusBadRequest, s.get("/api/v1/satellite-predictions?minConfidence=abc").Code)
	assert.Equal(t, http.StatusBadRequest, s.get("/api/v1/tag-data?preyType=seal").Code)
	assert.Equal(t, http.StatusBadRequest, s.get("/api/v1/combined-events?markerType=x").Code)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t, nil)
	s.get("/api/v1/system-stats")

	w := s.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "sharktrack_http_requests_total"))
}

func TestRouter_RateLimited(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(1, 2))

	codes := []int{
		s.get("/api/v1/data-sources").Code,
		s.get("/api/v1/data-sources").Code,
		s.get("/api/v1/data-sources").Code,
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Health and metrics are outside the limited group
	assert.Equal(t, http.StatusOK, s.get("/health").Code)
}
