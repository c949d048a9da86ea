// Package dataset projects the prediction and telemetry tables into the combined display table.
package dataset

import (
	"fmt"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
)

// Tables holds the three output tables of one run
type Tables struct {
	Predictions []models.SatellitePrediction `json:"satellite_predictions"`
	TagEvents   []models.TagEvent            `json:"tag_telemetry"`
	Combined    []models.CombinedRecord      `json:"combined_display"`
}

// NewTables builds the combined table from the two source tables
func NewTables(predictions []models.SatellitePrediction, events []models.TagEvent) Tables {
	return Tables{
		Predictions: predictions,
		TagEvents:   events,
		Combined:    Combine(predictions, events),
	}
}

// FormatSize renders a shark length the way it appears in display rows
func FormatSize(sizeM float64) string {
	return fmt.Sprintf("%.1f", sizeM)
}

// FromPrediction projects a prediction into a display row
func FromPrediction(p models.SatellitePrediction) models.CombinedRecord {
	return models.CombinedRecord{
		EventID:           p.ID,
		Latitude:          p.Sample.Point.Latitude,
		Longitude:         p.Sample.Point.Longitude,
		DisplayConfidence: p.Confidence(),
		Timestamp:         p.Timestamp,
		PreyType:          p.PredictedPrey,
		MarkerType:        models.MarkerPrediction,
		PopupInfo:         fmt.Sprintf("Satellite prediction (%s) - %s", p.Score.Quality, p.LocationName),
		DataSource:        models.SourceSatellitePrediction,
		HabitatQuality:    string(p.Score.Quality),
		LocationName:      p.LocationName,
		SharkSpecies:      models.NotAvailable,
		SharkSizeM:        models.NotAvailable,
	}
}

// FromTagEvent projects a tag event into a display row
func FromTagEvent(e models.TagEvent) models.CombinedRecord {
	size := FormatSize(e.Shark.SizeM)
	return models.CombinedRecord{
		EventID:           e.TagID,
		Latitude:          e.Latitude,
		Longitude:         e.Longitude,
		DisplayConfidence: e.TagConfidence,
		Timestamp:         e.Timestamp,
		PreyType:          e.ActualPrey,
		MarkerType:        models.MarkerValidation,
		PopupInfo:         fmt.Sprintf("%s (%sm) - Feeding event", e.Shark.Species.Name, size),
		DataSource:        models.SourceTagTelemetry,
		HabitatQuality:    models.NotAvailable,
		LocationName:      models.NotAvailable,
		SharkSpecies:      e.Shark.Species.Name,
		SharkSizeM:        size,
	}
}

// Combine concatenates predictions then events, preserving each side's order
func Combine(predictions []models.SatellitePrediction, events []models.TagEvent) []models.CombinedRecord {
	combined := make([]models.CombinedRecord, 0, len(predictions)+len(events))
	for _, p := range predictions {
		combined = append(combined, FromPrediction(p))
	}
	for _, e := range events {
		combined = append(combined, FromTagEvent(e))
	}
	return combined
}
