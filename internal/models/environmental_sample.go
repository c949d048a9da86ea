package models

// EnvironmentalSample holds the synthesized ocean fields for one sampled coordinate
type EnvironmentalSample struct {
	Point        GeographicPoint `json:"point"`
	LocationName string          `json:"location_name"`

	ChlorophyllA          float64 `json:"chlorophyll_a"`           // mg/m³, [0.05, 10]
	SeaSurfaceTemperature float64 `json:"sea_surface_temperature"` // °C, [15, 26]
	SSHAnomaly            float64 `json:"ssh_anomaly"`             // metres, unclamped
	PlanktonDensity       float64 `json:"plankton_density"`        // cells/L, [800, 45000]

	// Degree-space distance to the basin center
	DistanceFromCoast float64 `json:"distance_from_coast"`

	EnvironmentalImpact float64 `json:"environmental_impact"`
	NearbyEventCount    int     `json:"nearby_event_count"`
}
