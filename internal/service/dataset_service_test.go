package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/performance"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
)

var testNow = time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)

func testSnapshot() *snapshot.Snapshot {
	predictions := []models.SatellitePrediction{
		{ID: "SAT_001", Score: models.NewHabitatScore(0.9), PredictedPrey: models.PreySmallFish, LocationName: "Bondi Beach", Timestamp: testNow},
		{ID: "SAT_002", Score: models.NewHabitatScore(0.6), PredictedPrey: models.PreySquidCephalopods, LocationName: "Sydney Waters", Timestamp: testNow},
		{ID: "SAT_003", Score: models.NewHabitatScore(0.3), PredictedPrey: models.PreySmallFish, LocationName: "Sydney Waters", Timestamp: testNow},
	}
	greatWhite := models.SharkTag{ID: "SHK_001", Species: models.SpeciesProfile{Name: "Great White"}, SizeM: 4.1}
	bull := models.SharkTag{ID: "SHK_002", Species: models.SpeciesProfile{Name: "Bull Shark"}, SizeM: 3.2}
	events := []models.TagEvent{
		{TagID: "TAG_SHK_001_01", Shark: greatWhite, PredictionID: "SAT_001", ActualPrey: models.PreySmallFish, PredictedPrey: models.PreySmallFish, Accuracy: models.AccuracyCorrect},
		{TagID: "TAG_SHK_001_02", Shark: greatWhite, PredictionID: "SAT_002", ActualPrey: models.PreyMixedDiet, PredictedPrey: models.PreySquidCephalopods, Accuracy: models.AccuracyIncorrect},
		{TagID: "TAG_SHK_002_01", Shark: bull, PredictionID: "SAT_001", ActualPrey: models.PreySmallFish, PredictedPrey: models.PreySmallFish, Accuracy: models.AccuracyCorrect},
	}
	tables := dataset.NewTables(predictions, events)
	info := performance.RunInfo{RunID: "run-1", GeneratedAt: testNow}
	return &snapshot.Snapshot{
		RunID:       "run-1",
		GeneratedAt: testNow,
		Tables:      tables,
		Metrics:     performance.Analyze(tables),
		Stats:       performance.SystemStats(tables, info),
	}
}

func newTestService(loaded bool) *DatasetService {
	store := snapshot.NewStore()
	if loaded {
		store.Swap(testSnapshot())
	}
	return NewDatasetService(store, []models.DataSource{{Name: "events", Enabled: true}})
}

func TestDatasetService_NotGenerated(t *testing.T) {
	s := newTestService(false)

	_, err := s.GetPredictions(models.PredictionFilter{})
	assert.ErrorIs(t, err, ErrNotGenerated)
	_, err = s.GetTagEvents(models.TagEventFilter{})
	assert.ErrorIs(t, err, ErrNotGenerated)
	_, err = s.GetCombined(models.CombinedFilter{})
	assert.ErrorIs(t, err, ErrNotGenerated)
	_, err = s.GetSystemStats()
	assert.ErrorIs(t, err, ErrNotGenerated)
	_, err = s.GetPerformance()
	assert.ErrorIs(t, err, ErrNotGenerated)

	assert.False(t, s.Ready())
	assert.Len(t, s.GetDataSources(), 1)
}

func TestDatasetService_GetPredictions(t *testing.T) {
	s := newTestService(true)

	tests := []struct {
		name    string
		filter  models.PredictionFilter
		wantIDs []string
	}{
		{"all", models.PredictionFilter{}, []string{"SAT_001", "SAT_002", "SAT_003"}},
		{"quality", models.PredictionFilter{Quality: "medium"}, []string{"SAT_002"}},
		{"prey", models.PredictionFilter{PreyType: "small_fish"}, []string{"SAT_001", "SAT_003"}},
		{"location", models.PredictionFilter{Location: "sydney waters"}, []string{"SAT_002", "SAT_003"}},
		{"min confidence", models.PredictionFilter{MinConfidence: 0.5}, []string{"SAT_001", "SAT_002"}},
		{"page two", models.PredictionFilter{Page: 2, PageSize: 2}, []string{"SAT_003"}},
		{"past the end", models.PredictionFilter{Page: 5, PageSize: 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.GetPredictions(tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, row := range page.Data {
				ids = append(ids, row.PredictionID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDatasetService_GetPredictionsInvalid(t *testing.T) {
	s := newTestService(true)

	for _, f := range []models.PredictionFilter{
		{Quality: "excellent"},
		{PreyType: "seals"},
		{MinConfidence: 1.5},
	} {
		_, err := s.GetPredictions(f)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	}
}

func TestDatasetService_GetTagEvents(t *testing.T) {
	s := newTestService(true)

	page, err := s.GetTagEvents(models.TagEventFilter{Species: "Great White"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "SHK_001", page.Data[0].SharkID)

	page, err = s.GetTagEvents(models.TagEventFilter{Accuracy: "incorrect"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, models.PreyMixedDiet, page.Data[0].ActualPreyType)

	page, err = s.GetTagEvents(models.TagEventFilter{SharkID: "SHK_002"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	_, err = s.GetTagEvents(models.TagEventFilter{Accuracy: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestDatasetService_GetCombined(t *testing.T) {
	s := newTestService(true)

	page, err := s.GetCombined(models.CombinedFilter{})
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)

	page, err = s.GetCombined(models.CombinedFilter{MarkerType: "validation"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	for _, r := range page.Data {
		assert.Equal(t, models.MarkerValidation, r.MarkerType)
	}

	_, err = s.GetCombined(models.CombinedFilter{MarkerType: "heatmap"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestDatasetService_Stats(t *testing.T) {
	s := newTestService(true)

	stats, err := s.GetSystemStats()
	require.NoError(t, err)
	assert.Equal(t, 0.667, stats.PredictionAccuracy)
	assert.Equal(t, 3, stats.TotalSatellitePredictions)
	assert.Equal(t, map[string]int{"Great White": 2, "Bull Shark": 1}, stats.SharkSpeciesTracked)

	perf, err := s.GetPerformance()
	require.NoError(t, err)
	assert.Equal(t, 2, perf.SpeciesDiversity)
}

func TestPaginate(t *testing.T) {
	rows := make([]int, 250)

	p := paginate(rows, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Data, 100)
	assert.Equal(t, 3, p.TotalPages)

	p = paginate(rows, 3, 100)
	assert.Len(t, p.Data, 50)

	p = paginate(rows, 1, 5000)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Len(t, p.Data, 250)

	p = paginate(rows, 4, 100)
	assert.Empty(t, p.Data)
	assert.Equal(t, 4, p.Page)

	p = paginate([]int{1, 2, 3}, math.MaxInt64/10, MaxPageSize)
	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
	assert.Equal(t, 3, p.Total)

	p = paginate([]int{1, 2, 3}, math.MaxInt, 1)
	assert.Empty(t, p.Data)

	empty := paginate([]int(nil), 1, 10)
	assert.NotNil(t, empty.Data)
	assert.Zero(t, empty.TotalPages)
}
