package models

import "time"

// PredictionRow is the flat, column-named view of a prediction served by the query service
type PredictionRow struct {
	PredictionID              string    `json:"prediction_id"`
	Latitude                  float64   `json:"latitude"`
	Longitude                 float64   `json:"longitude"`
	Confidence                float64   `json:"confidence"`
	Timestamp                 time.Time `json:"timestamp"`
	WaterTemperature          float64   `json:"water_temperature"`
	ChlorophyllA              float64   `json:"chlorophyll_a"`
	SSHAnomaly                float64   `json:"ssh_anomaly"`
	PlanktonDensity           float64   `json:"plankton_density"`
	PredictedPreyType         PreyType  `json:"predicted_prey_type"`
	HabitatQuality            string    `json:"habitat_quality"`
	LocationName              string    `json:"location_name"`
	EnvironmentalEventsNearby int       `json:"environmental_events_nearby"`
}

// NewPredictionRow flattens a prediction
func NewPredictionRow(p SatellitePrediction) PredictionRow {
	return PredictionRow{
		PredictionID:              p.ID,
		Latitude:                  p.Sample.Point.Latitude,
		Longitude:                 p.Sample.Point.Longitude,
		Confidence:                p.Confidence(),
		Timestamp:                 p.Timestamp,
		WaterTemperature:          p.Sample.SeaSurfaceTemperature,
		ChlorophyllA:              p.Sample.ChlorophyllA,
		SSHAnomaly:                p.Sample.SSHAnomaly,
		PlanktonDensity:           p.Sample.PlanktonDensity,
		PredictedPreyType:         p.PredictedPrey,
		HabitatQuality:            string(p.Score.Quality),
		LocationName:              p.LocationName,
		EnvironmentalEventsNearby: p.Sample.NearbyEventCount,
	}
}

// TelemetryRow is the flat, column-named view of a tag event served by the query service
type TelemetryRow struct {
	TagID               string        `json:"tag_id"`
	SharkID             string        `json:"shark_id"`
	SharkSpecies        string        `json:"shark_species"`
	SharkSizeM          float64       `json:"shark_size_m"`
	Latitude            float64       `json:"latitude"`
	Longitude           float64       `json:"longitude"`
	Timestamp           time.Time     `json:"timestamp"`
	FeedingIntensity    float64       `json:"feeding_intensity"`
	StomachPH           float64       `json:"stomach_ph"`
	BiteForce           float64       `json:"bite_force_newtons"`
	SwimmingSpeed       float64       `json:"swimming_speed_ms"`
	WaterTemperature    float64       `json:"water_temperature"`
	ActualPreyType      PreyType      `json:"actual_prey_type"`
	PredictedPreyType   PreyType      `json:"predicted_prey_type"`
	PredictionAccuracy  AccuracyLabel `json:"prediction_accuracy"`
	TagConfidence       float64       `json:"tag_confidence"`
	SatelliteConfidence float64       `json:"satellite_confidence"`
	BatteryLevel        float64       `json:"battery_level_percent"`
	SignalStrength      int           `json:"signal_strength_dbm"`
}

// NewTelemetryRow flattens a tag event
func NewTelemetryRow(e TagEvent) TelemetryRow {
	return TelemetryRow{
		TagID:               e.TagID,
		SharkID:             e.Shark.ID,
		SharkSpecies:        e.Shark.Species.Name,
		SharkSizeM:          e.Shark.SizeM,
		Latitude:            e.Latitude,
		Longitude:           e.Longitude,
		Timestamp:           e.Timestamp,
		FeedingIntensity:    e.FeedingIntensity,
		StomachPH:           e.StomachPH,
		BiteForce:           e.BiteForce,
		SwimmingSpeed:       e.SwimmingSpeed,
		WaterTemperature:    e.WaterTemperature,
		ActualPreyType:      e.ActualPrey,
		PredictedPreyType:   e.PredictedPrey,
		PredictionAccuracy:  e.Accuracy,
		TagConfidence:       e.TagConfidence,
		SatelliteConfidence: e.SatelliteConfidence,
		BatteryLevel:        e.BatteryLevel,
		SignalStrength:      e.SignalStrength,
	}
}

// DataSource describes one external input of the generator
type DataSource struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}
