package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
)

// Pagination bounds
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

var (
	// ErrNotGenerated is returned until the first snapshot has been published
	ErrNotGenerated = errors.New("dataset has not been generated yet")
	// ErrInvalidFilter wraps rejected query parameters
	ErrInvalidFilter = errors.New("invalid filter")
)

// DatasetService answers read-only queries against the current snapshot
type DatasetService struct {
	store   *snapshot.Store
	sources []models.DataSource
}

// NewDatasetService creates a dataset service
func NewDatasetService(store *snapshot.Store, sources []models.DataSource) *DatasetService {
	return &DatasetService{
		store:   store,
		sources: sources,
	}
}

func (s *DatasetService) current() (*snapshot.Snapshot, error) {
	snap := s.store.Load()
	if snap == nil {
		return nil, ErrNotGenerated
	}
	return snap, nil
}

// GetPredictions returns the filtered, paginated prediction table
func (s *DatasetService) GetPredictions(filter models.PredictionFilter) (*models.PageResponse[models.PredictionRow], error) {
	if filter.Quality != "" {
		switch models.HabitatQuality(filter.Quality) {
		case models.HabitatQualityHigh, models.HabitatQualityMedium, models.HabitatQualityLow:
		default:
			return nil, fmt.Errorf("%w: unknown quality %q", ErrInvalidFilter, filter.Quality)
		}
	}
	if filter.PreyType != "" && !models.PreyType(filter.PreyType).Valid() {
		return nil, fmt.Errorf("%w: unknown prey type %q", ErrInvalidFilter, filter.PreyType)
	}
	if filter.MinConfidence < 0 || filter.MinConfidence > 1 {
		return nil, fmt.Errorf("%w: minConfidence must be within [0, 1]", ErrInvalidFilter)
	}

	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	var rows []models.PredictionRow
	for _, p := range snap.Tables.Predictions {
		if filter.Quality != "" && string(p.Score.Quality) != filter.Quality {
			continue
		}
		if filter.PreyType != "" && string(p.PredictedPrey) != filter.PreyType {
			continue
		}
		if filter.Location != "" && !strings.EqualFold(p.LocationName, filter.Location) {
			continue
		}
		if p.Confidence() < filter.MinConfidence {
			continue
		}
		rows = append(rows, models.NewPredictionRow(p))
	}

	return paginate(rows, filter.Page, filter.PageSize), nil
}

// GetTagEvents returns the filtered, paginated telemetry table
func (s *DatasetService) GetTagEvents(filter models.TagEventFilter) (*models.PageResponse[models.TelemetryRow], error) {
	if filter.Accuracy != "" && filter.Accuracy != string(models.AccuracyCorrect) && filter.Accuracy != string(models.AccuracyIncorrect) {
		return nil, fmt.Errorf("%w: unknown accuracy %q", ErrInvalidFilter, filter.Accuracy)
	}
	if filter.PreyType != "" && !models.PreyType(filter.PreyType).Valid() {
		return nil, fmt.Errorf("%w: unknown prey type %q", ErrInvalidFilter, filter.PreyType)
	}

	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	var rows []models.TelemetryRow
	for _, e := range snap.Tables.TagEvents {
		if filter.Species != "" && !strings.EqualFold(e.Shark.Species.Name, filter.Species) {
			continue
		}
		if filter.Accuracy != "" && string(e.Accuracy) != filter.Accuracy {
			continue
		}
		if filter.PreyType != "" && string(e.ActualPrey) != filter.PreyType {
			continue
		}
		if filter.SharkID != "" && e.Shark.ID != filter.SharkID {
			continue
		}
		rows = append(rows, models.NewTelemetryRow(e))
	}

	return paginate(rows, filter.Page, filter.PageSize), nil
}

// GetCombined returns the filtered, paginated display table
func (s *DatasetService) GetCombined(filter models.CombinedFilter) (*models.PageResponse[models.CombinedRecord], error) {
	switch models.MarkerType(filter.MarkerType) {
	case "", models.MarkerPrediction, models.MarkerValidation:
	default:
		return nil, fmt.Errorf("%w: unknown marker type %q", ErrInvalidFilter, filter.MarkerType)
	}

	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	var rows []models.CombinedRecord
	for _, c := range snap.Tables.Combined {
		if filter.MarkerType != "" && string(c.MarkerType) != filter.MarkerType {
			continue
		}
		rows = append(rows, c)
	}

	return paginate(rows, filter.Page, filter.PageSize), nil
}

// GetSystemStats returns the aggregate statistics of the current snapshot
func (s *DatasetService) GetSystemStats() (*models.SystemStats, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	stats := snap.Stats
	return &stats, nil
}

// GetPerformance returns the performance metrics of the current snapshot
func (s *DatasetService) GetPerformance() (*models.PerformanceMetrics, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	metrics := snap.Metrics
	return &metrics, nil
}

// GetDataSources lists the configured external inputs; it does not need a snapshot
func (s *DatasetService) GetDataSources() []models.DataSource {
	return s.sources
}

// Ready reports whether a snapshot has been published
func (s *DatasetService) Ready() bool {
	return s.store.Load() != nil
}

// paginate slices rows into the requested page, applying defaults and bounds
func paginate[T any](rows []T, page, pageSize int) *models.PageResponse[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize
	start := total
	if page <= totalPages {
		start = (page - 1) * pageSize
	}
	end := min(start+pageSize, total)

	data := rows[start:end]
	if data == nil {
		data = []T{}
	}

	return &models.PageResponse[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
