package environment

import (
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

// Per-geometry adjustments applied to the habitat score by nearby events
const (
	StormImpact = -0.1
	SeaImpact   = 0.05
)

// DefaultEventRadius is the degree-space radius within which an event counts as nearby
const DefaultEventRadius = 2.0

// EventInfluence is the effect of the external events on one coordinate
type EventInfluence struct {
	Impact      float64
	NearbyCount int
}

// locatedEvent is an event whose geometry decoded cleanly
type locatedEvent struct {
	storm     bool
	sea       bool
	positions []models.GeographicPoint
}

// EventField pre-decodes external events so that each sample only measures distances.
// Events with malformed geometry are dropped here, once.
type EventField struct {
	Radius  float64
	events  []locatedEvent
	skipped int
}

// NewEventField decodes the events; malformed events are skipped and counted
func NewEventField(events []models.EnvironmentalEvent, radius float64) *EventField {
	f := &EventField{Radius: radius}
	for _, e := range events {
		positions, err := e.Positions()
		if err != nil {
			f.skipped++
			continue
		}
		f.events = append(f.events, locatedEvent{
			storm:     e.IsStorm(),
			sea:       e.IsSea(),
			positions: positions,
		})
	}
	return f
}

// Skipped returns the number of events dropped for malformed geometry
func (f *EventField) Skipped() int {
	if f == nil {
		return 0
	}
	return f.skipped
}

// Influence accumulates the impact of every nearby geometry and counts nearby events
func (f *EventField) Influence(p models.GeographicPoint) EventInfluence {
	var inf EventInfluence
	if f == nil {
		return inf
	}

	for _, e := range f.events {
		nearby := false
		for _, pos := range e.positions {
			if spatial.DegreeDistance(p, pos) >= f.Radius {
				continue
			}
			nearby = true
			switch {
			case e.storm:
				inf.Impact += StormImpact
			case e.sea:
				inf.Impact += SeaImpact
			}
		}
		if nearby {
			inf.NearbyCount++
		}
	}

	return inf
}
