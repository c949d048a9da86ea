package models

import "time"

// MarkerType distinguishes prediction rows from validation rows in the display table
type MarkerType string

const (
	MarkerPrediction MarkerType = "prediction"
	MarkerValidation MarkerType = "validation"
)

// NotAvailable back-fills columns that only exist on one side of the union
const NotAvailable = "N/A"

// Data source labels
const (
	SourceSatellitePrediction = "satellite_prediction"
	SourceTagTelemetry        = "tag_telemetry"
)

// CombinedRecord is a display row projected from a prediction or a tag event
type CombinedRecord struct {
	EventID           string     `json:"event_id"`
	Latitude          float64    `json:"latitude"`
	Longitude         float64    `json:"longitude"`
	DisplayConfidence float64    `json:"display_confidence"`
	Timestamp         time.Time  `json:"timestamp"`
	PreyType          PreyType   `json:"prey_type"`
	MarkerType        MarkerType `json:"marker_type"`
	PopupInfo         string     `json:"popup_info"`
	DataSource        string     `json:"data_source"`

	HabitatQuality string `json:"habitat_quality"`
	LocationName   string `json:"location_name"`
	SharkSpecies   string `json:"shark_species"`
	SharkSizeM     string `json:"shark_size_m"`
}
