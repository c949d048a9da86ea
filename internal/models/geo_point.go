package models

// GeographicPoint is a latitude/longitude pair in decimal degrees
type GeographicPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Hotspot is a named coastal location used to bias sample placement.
// Activity is descriptive metadata and does not weight selection.
type Hotspot struct {
	Name     string          `json:"name"`
	Point    GeographicPoint `json:"point"`
	Activity float64         `json:"activity"`
}
