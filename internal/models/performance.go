package models

// SpeciesPerformance summarises validation events of one species
type SpeciesPerformance struct {
	Species  string  `json:"species"`
	Events   int     `json:"events"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// SharkTrackSummary summarises the fixes reported by one tag
type SharkTrackSummary struct {
	SharkID          string  `json:"shark_id"`
	Species          string  `json:"species"`
	Events           int     `json:"events"`
	PathLengthMeters float64 `json:"path_length_meters"`
	RadiusOfGyration float64 `json:"radius_of_gyration_meters"`
}

// EnvironmentalRange is the min/max of a field across the prediction table
type EnvironmentalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PerformanceMetrics is the flat metrics record produced after each run
type PerformanceMetrics struct {
	TotalPredictions       int     `json:"total_predictions"`
	TotalValidations       int     `json:"total_validations"`
	PredictionAccuracy     float64 `json:"prediction_accuracy"`
	AvgSatelliteConfidence float64 `json:"avg_satellite_confidence"`
	AvgTagConfidence       float64 `json:"avg_tag_confidence"`
	SpeciesDiversity       int     `json:"species_diversity"`

	SpeciesAccuracy []SpeciesPerformance `json:"species_accuracy"`
	AccuracyCounts  map[string]int       `json:"accuracy_counts"`
	QualityCounts   map[string]int       `json:"habitat_quality_counts"`

	WaterTemperature EnvironmentalRange `json:"water_temperature"`
	ChlorophyllA     EnvironmentalRange `json:"chlorophyll_a"`

	// Pearson correlations across the prediction table
	TempChlorophyllCorrelation float64 `json:"temp_chlorophyll_correlation"`
	TempConfidenceCorrelation  float64 `json:"temp_confidence_correlation"`
	ChlConfidenceCorrelation   float64 `json:"chl_confidence_correlation"`

	Tracks []SharkTrackSummary `json:"tracks"`
}

// SystemStats is the aggregate object served by the query service
type SystemStats struct {
	PredictionAccuracy        float64        `json:"prediction_accuracy"`
	TotalSatellitePredictions int            `json:"total_satellite_predictions"`
	TotalTagValidations       int            `json:"total_tag_validations"`
	SharkSpeciesTracked       map[string]int `json:"shark_species_tracked"`
	SatelliteProductsFound    int            `json:"satellite_products_found"`
	EnvironmentalEvents       int            `json:"environmental_events"`
	RunID                     string         `json:"run_id"`
	GeneratedAt               string         `json:"generated_at"`
}
