// Package performance summarises a run's tables into metrics and system statistics.
package performance

import (
	"sort"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
	"github.com/jengzang/sharktrack-backend-go/internal/stats"
)

// Fallbacks reported when a table is empty
const (
	FallbackAccuracy            = 0.85
	FallbackSatelliteConfidence = 0.75
	FallbackTagConfidence       = 0.82
)

// Analyze computes the performance metrics of one run
func Analyze(tables dataset.Tables) models.PerformanceMetrics {
	preds, events := tables.Predictions, tables.TagEvents

	m := models.PerformanceMetrics{
		TotalPredictions:       len(preds),
		TotalValidations:       len(events),
		PredictionAccuracy:     FallbackAccuracy,
		AvgSatelliteConfidence: FallbackSatelliteConfidence,
		AvgTagConfidence:       FallbackTagConfidence,
		AccuracyCounts: map[string]int{
			string(models.AccuracyCorrect):   0,
			string(models.AccuracyIncorrect): 0,
		},
		QualityCounts: map[string]int{
			string(models.HabitatQualityHigh):   0,
			string(models.HabitatQualityMedium): 0,
			string(models.HabitatQualityLow):    0,
		},
	}

	if len(preds) > 0 {
		sst := make([]float64, len(preds))
		chl := make([]float64, len(preds))
		conf := make([]float64, len(preds))
		for i, p := range preds {
			sst[i] = p.Sample.SeaSurfaceTemperature
			chl[i] = p.Sample.ChlorophyllA
			conf[i] = p.Confidence()
			m.QualityCounts[string(p.Score.Quality)]++
		}

		m.AvgSatelliteConfidence = stats.Mean(conf)
		m.WaterTemperature = models.EnvironmentalRange{Min: stats.Min(sst), Max: stats.Max(sst)}
		m.ChlorophyllA = models.EnvironmentalRange{Min: stats.Min(chl), Max: stats.Max(chl)}
		m.TempChlorophyllCorrelation = stats.PearsonCorrelation(sst, chl)
		m.TempConfidenceCorrelation = stats.PearsonCorrelation(sst, conf)
		m.ChlConfidenceCorrelation = stats.PearsonCorrelation(chl, conf)
	}

	if len(events) > 0 {
		tagConf := make([]float64, len(events))
		correct := 0
		for i, e := range events {
			tagConf[i] = e.TagConfidence
			m.AccuracyCounts[string(e.Accuracy)]++
			if e.Correct() {
				correct++
			}
		}
		m.PredictionAccuracy = float64(correct) / float64(len(events))
		m.AvgTagConfidence = stats.Mean(tagConf)
	}

	m.SpeciesAccuracy = SpeciesBreakdown(events)
	m.SpeciesDiversity = len(m.SpeciesAccuracy)
	m.Tracks = Tracks(events)

	return m
}

// SpeciesBreakdown returns per-species event counts and accuracy, ordered by species name
func SpeciesBreakdown(events []models.TagEvent) []models.SpeciesPerformance {
	bySpecies := make(map[string]*models.SpeciesPerformance)
	for _, e := range events {
		name := e.Shark.Species.Name
		sp, ok := bySpecies[name]
		if !ok {
			sp = &models.SpeciesPerformance{Species: name}
			bySpecies[name] = sp
		}
		sp.Events++
		if e.Correct() {
			sp.Correct++
		}
	}

	result := make([]models.SpeciesPerformance, 0, len(bySpecies))
	for _, sp := range bySpecies {
		sp.Accuracy = float64(sp.Correct) / float64(sp.Events)
		result = append(result, *sp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Species < result[j].Species
	})
	return result
}

// Tracks summarises each tagged shark's fixes in chronological order, ordered by shark id
func Tracks(events []models.TagEvent) []models.SharkTrackSummary {
	byShark := make(map[string][]models.TagEvent)
	for _, e := range events {
		byShark[e.Shark.ID] = append(byShark[e.Shark.ID], e)
	}

	tracks := make([]models.SharkTrackSummary, 0, len(byShark))
	for id, sharkEvents := range byShark {
		sort.SliceStable(sharkEvents, func(i, j int) bool {
			return sharkEvents[i].Timestamp.Before(sharkEvents[j].Timestamp)
		})

		points := make([]models.GeographicPoint, len(sharkEvents))
		for i, e := range sharkEvents {
			points[i] = models.GeographicPoint{Latitude: e.Latitude, Longitude: e.Longitude}
		}

		tracks = append(tracks, models.SharkTrackSummary{
			SharkID:          id,
			Species:          sharkEvents[0].Shark.Species.Name,
			Events:           len(sharkEvents),
			PathLengthMeters: spatial.PathLength(points),
			RadiusOfGyration: spatial.RadiusOfGyration(points),
		})
	}
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].SharkID < tracks[j].SharkID
	})
	return tracks
}

// RunInfo identifies the run a set of statistics belongs to
type RunInfo struct {
	RunID        string
	GeneratedAt  time.Time
	ProductCount int
	EventCount   int
}

// SystemStats builds the aggregate served by the query service.
// Accuracy is rounded to 3 decimals and reported as 0 when there are no events.
func SystemStats(tables dataset.Tables, info RunInfo) models.SystemStats {
	st := models.SystemStats{
		TotalSatellitePredictions: len(tables.Predictions),
		TotalTagValidations:       len(tables.TagEvents),
		SharkSpeciesTracked:       make(map[string]int),
		SatelliteProductsFound:    info.ProductCount,
		EnvironmentalEvents:       info.EventCount,
		RunID:                     info.RunID,
		GeneratedAt:               info.GeneratedAt.UTC().Format(time.RFC3339),
	}

	correct := 0
	for _, e := range tables.TagEvents {
		st.SharkSpeciesTracked[e.Shark.Species.Name]++
		if e.Correct() {
			correct++
		}
	}
	if n := len(tables.TagEvents); n > 0 {
		st.PredictionAccuracy = stats.Round(float64(correct)/float64(n), 3)
	}

	return st
}
