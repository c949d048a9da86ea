package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EnvironmentalEvent is a natural event reported by the external event feed
type EnvironmentalEvent struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Categories []EventCategory `json:"categories"`
	Geometry   []EventGeometry `json:"geometry"`
}

// EventCategory labels an event (e.g. "Severe Storms", "Sea and Lake Ice")
type EventCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// EventGeometry keeps coordinates raw so that malformed entries can be detected per event
type EventGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Category returns the title of the first category, or "" if there is none
func (e EnvironmentalEvent) Category() string {
	if len(e.Categories) == 0 {
		return ""
	}
	return e.Categories[0].Title
}

// IsStorm reports whether the event belongs to a storm category
func (e EnvironmentalEvent) IsStorm() bool {
	return strings.Contains(e.Category(), "Storm")
}

// IsSea reports whether the event belongs to a sea category
func (e EnvironmentalEvent) IsSea() bool {
	return strings.Contains(e.Category(), "Sea")
}

// Positions decodes every geometry entry into a point.
// Entries with fewer than two coordinates are ignored; any entry that is not a flat
// numeric array makes the whole event malformed.
func (e EnvironmentalEvent) Positions() ([]GeographicPoint, error) {
	points := make([]GeographicPoint, 0, len(e.Geometry))
	for i, g := range e.Geometry {
		if len(g.Coordinates) == 0 {
			continue
		}
		var coords []float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("event %s geometry %d: %w", e.ID, i, err)
		}
		if len(coords) < 2 {
			continue
		}
		points = append(points, GeographicPoint{Latitude: coords[1], Longitude: coords[0]})
	}
	return points, nil
}
