package models

import "time"

// SatellitePrediction is one row of the habitat prediction layer
type SatellitePrediction struct {
	ID            string              `json:"prediction_id"`
	Sample        EnvironmentalSample `json:"sample"`
	Score         HabitatScore        `json:"score"`
	PredictedPrey PreyType            `json:"predicted_prey_type"`
	Timestamp     time.Time           `json:"timestamp"`
	LocationName  string              `json:"location_name"`
}

// Confidence is the habitat score value, exposed under its table column name
func (p SatellitePrediction) Confidence() float64 {
	return p.Score.Value
}
