// Package telemetry simulates tagged sharks validating satellite predictions.
package telemetry

import (
	"fmt"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
	"github.com/jengzang/sharktrack-backend-go/internal/stats"
)

// Simulation defaults
const (
	DefaultSharkCount = 12
	DefaultMinEvents  = 8
	DefaultMaxEvents  = 15

	FixJitterDegrees = 0.0008
	WaterTempNoise   = 0.3
	MinWaterTemp     = 15.0
	MaxWaterTemp     = 26.0
	MinBattery       = 25.0
	BatteryDrainMean = 12.0
)

// SimulationStats counts what happened while simulating. Iterations without any
// candidate prediction are skipped and emit no event.
type SimulationStats struct {
	Sharks          int `json:"sharks"`
	Events          int `json:"events"`
	TargetEvents    int `json:"target_events"`
	SkippedEvents   int `json:"skipped_events"`
	RelaxedSearches int `json:"relaxed_searches"`
}

// Simulator produces tag validation events against a prediction table
type Simulator struct {
	Region    spatial.Region
	Species   []models.SpeciesProfile
	Sharks    int
	MinEvents int
	MaxEvents int
}

// NewSimulator creates a simulator with the default species and event counts
func NewSimulator(region spatial.Region) *Simulator {
	return &Simulator{
		Region:    region,
		Species:   DefaultSpecies,
		Sharks:    DefaultSharkCount,
		MinEvents: DefaultMinEvents,
		MaxEvents: DefaultMaxEvents,
	}
}

// SharkID formats the id of the i-th shark (0-based)
func SharkID(i int) string {
	return fmt.Sprintf("SHK_%03d", i+1)
}

// TagID formats the id of a shark's n-th event (1-based)
func TagID(sharkID string, n int) string {
	return fmt.Sprintf("TAG_%s_%02d", sharkID, n)
}

// Tags draws the tagged animals
func (sim *Simulator) Tags(s *sampling.Sampler) []models.SharkTag {
	tags := make([]models.SharkTag, 0, sim.Sharks)
	for i := 0; i < sim.Sharks; i++ {
		species := sampling.Choice(s, sim.Species)
		tags = append(tags, models.SharkTag{
			ID:      SharkID(i),
			Species: species,
			SizeM:   stats.Round(s.Uniform(species.SizeMin, species.SizeMax), 1),
		})
	}
	return tags
}

// Simulate produces the tag events for every shark, shark by shark in iteration order
func (sim *Simulator) Simulate(predictions []models.SatellitePrediction, s *sampling.Sampler, now time.Time) ([]models.TagEvent, SimulationStats) {
	tags := sim.Tags(s)
	st := SimulationStats{Sharks: len(tags)}
	var events []models.TagEvent

	for _, tag := range tags {
		target := s.IntRange(sim.MinEvents, sim.MaxEvents)
		st.TargetEvents += target

		pool, relaxed := CandidatePool(predictions, tag.Species)
		if relaxed {
			st.RelaxedSearches++
		}
		if len(pool) == 0 {
			st.SkippedEvents += target
			continue
		}

		for iter := 0; iter < target; iter++ {
			events = append(events, sim.event(tag, iter, sampling.Choice(s, pool), s, now))
		}
	}

	st.Events = len(events)
	return events, st
}

func (sim *Simulator) event(tag models.SharkTag, iter int, pred models.SatellitePrediction, s *sampling.Sampler, now time.Time) models.TagEvent {
	fix := sim.Region.Clamp(models.GeographicPoint{
		Latitude:  pred.Sample.Point.Latitude + s.Normal(0, FixJitterDegrees),
		Longitude: pred.Sample.Point.Longitude + s.Normal(0, FixJitterDegrees),
	})

	intensity := s.Beta(2, 3)

	var ph float64
	if intensity > 0.7 {
		ph = s.Uniform(1.2, 2.2)
	} else {
		ph = s.Uniform(2.8, 4.2)
	}

	bite := tag.SizeM * 180 * tag.Species.Aggression * intensity * s.Uniform(0.8, 1.2)

	var speed float64
	if intensity > 0.6 {
		speed = s.Uniform(2.8, 5.2)
	} else {
		speed = s.Uniform(0.9, 2.3)
	}

	sst := pred.Sample.SeaSurfaceTemperature
	actual := pred.PredictedPrey
	accuracy := models.AccuracyCorrect
	if !s.Bernoulli(AccuracyProbability(pred.Confidence(), sst, tag.Species.TempPref)) {
		accuracy = models.AccuracyIncorrect
		actual = sampling.Choice(s, models.OtherPreyTypes(pred.PredictedPrey))
	}

	hours := s.IntRange(1, 167)
	battery := max(MinBattery, 100-s.Exponential(BatteryDrainMean))
	signal := s.IntRange(-88, -43)
	water := stats.Clamp(sst+s.Normal(0, WaterTempNoise), MinWaterTemp, MaxWaterTemp)

	return models.TagEvent{
		TagID:               TagID(tag.ID, iter+1),
		Shark:               tag,
		PredictionID:        pred.ID,
		Latitude:            fix.Latitude,
		Longitude:           fix.Longitude,
		Timestamp:           now.Add(-time.Duration(hours) * time.Hour),
		FeedingIntensity:    intensity,
		StomachPH:           ph,
		BiteForce:           bite,
		SwimmingSpeed:       speed,
		WaterTemperature:    water,
		ActualPrey:          actual,
		PredictedPrey:       pred.PredictedPrey,
		Accuracy:            accuracy,
		TagConfidence:       TagConfidence(intensity, ph, bite, speed),
		SatelliteConfidence: pred.Confidence(),
		BatteryLevel:        battery,
		SignalStrength:      signal,
	}
}
