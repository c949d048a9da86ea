package models

// HabitatQuality is the discrete bucket of a habitat suitability score
type HabitatQuality string

const (
	HabitatQualityHigh   HabitatQuality = "high"
	HabitatQualityMedium HabitatQuality = "medium"
	HabitatQualityLow    HabitatQuality = "low"
)

// Habitat score bounds and bucket thresholds
const (
	MinHabitatScore        = 0.1
	MaxHabitatScore        = 0.98
	HighQualityThreshold   = 0.75
	MediumQualityThreshold = 0.5
)

// HabitatScore is a bounded habitat suitability index with its quality bucket
type HabitatScore struct {
	Value   float64        `json:"value"`
	Quality HabitatQuality `json:"quality"`
}

// QualityFor buckets a score value
func QualityFor(value float64) HabitatQuality {
	switch {
	case value >= HighQualityThreshold:
		return HabitatQualityHigh
	case value >= MediumQualityThreshold:
		return HabitatQualityMedium
	default:
		return HabitatQualityLow
	}
}

// NewHabitatScore builds a score whose quality always matches its value
func NewHabitatScore(value float64) HabitatScore {
	return HabitatScore{Value: value, Quality: QualityFor(value)}
}
