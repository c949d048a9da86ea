package models

import "time"

// AccuracyLabel compares observed prey with the referenced prediction
type AccuracyLabel string

const (
	AccuracyCorrect   AccuracyLabel = "correct"
	AccuracyIncorrect AccuracyLabel = "incorrect"
)

// MaxTagConfidence caps the fused sensor confidence
const MaxTagConfidence = 0.95

// TagEvent is a simulated feeding event reported by an animal-borne tag
type TagEvent struct {
	TagID        string    `json:"tag_id"`
	Shark        SharkTag  `json:"shark"`
	PredictionID string    `json:"prediction_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Timestamp    time.Time `json:"timestamp"`

	FeedingIntensity float64 `json:"feeding_intensity"` // [0, 1]
	StomachPH        float64 `json:"stomach_ph"`
	BiteForce        float64 `json:"bite_force_newtons"`
	SwimmingSpeed    float64 `json:"swimming_speed_ms"`
	WaterTemperature float64 `json:"water_temperature"`

	ActualPrey          PreyType      `json:"actual_prey_type"`
	PredictedPrey       PreyType      `json:"predicted_prey_type"`
	Accuracy            AccuracyLabel `json:"prediction_accuracy"`
	TagConfidence       float64       `json:"tag_confidence"`
	SatelliteConfidence float64       `json:"satellite_confidence"`

	BatteryLevel   float64 `json:"battery_level_percent"`
	SignalStrength int     `json:"signal_strength_dbm"`
}

// Correct reports whether the prediction was confirmed
func (e TagEvent) Correct() bool {
	return e.Accuracy == AccuracyCorrect
}
