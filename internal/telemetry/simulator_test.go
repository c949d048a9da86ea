package telemetry

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

var (
	testNow    = time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)
	testRegion = spatial.NewRegion("Sydney Waters", -34.5, -33.0, 150.5, 152.0, -33.8688, 151.2093)
	tagIDRe    = regexp.MustCompile(`^TAG_SHK_\d{3}_\d{2}$`)
)

func prediction(id string, confidence, sst float64, prey models.PreyType) models.SatellitePrediction {
	return models.SatellitePrediction{
		ID: id,
		Sample: models.EnvironmentalSample{
			Point:                 models.GeographicPoint{Latitude: -33.9, Longitude: 151.3},
			SeaSurfaceTemperature: sst,
		},
		Score:         models.NewHabitatScore(confidence),
		PredictedPrey: prey,
		Timestamp:     testNow,
	}
}

func TestCandidatePool(t *testing.T) {
	greatWhite := DefaultSpecies[0]

	tests := []struct {
		name        string
		predictions []models.SatellitePrediction
		wantIDs     []string
		wantRelaxed bool
	}{
		{
			name: "strict pool",
			predictions: []models.SatellitePrediction{
				prediction("SAT_001", 0.8, 21, models.PreySmallFish),
				prediction("SAT_002", 0.35, 21, models.PreySmallFish),
				prediction("SAT_003", 0.9, 27, models.PreySmallFish),
			},
			wantIDs: []string{"SAT_001"},
		},
		{
			name: "relaxed to confidence only",
			predictions: []models.SatellitePrediction{
				prediction("SAT_001", 0.35, 21, models.PreySmallFish),
				prediction("SAT_002", 0.9, 27, models.PreySmallFish),
				prediction("SAT_003", 0.2, 21, models.PreySmallFish),
			},
			wantIDs:     []string{"SAT_001", "SAT_002"},
			wantRelaxed: true,
		},
		{
			name: "empty",
			predictions: []models.SatellitePrediction{
				prediction("SAT_001", 0.2, 21, models.PreySmallFish),
			},
			wantRelaxed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, relaxed := CandidatePool(tt.predictions, greatWhite)
			var ids []string
			for _, p := range pool {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantRelaxed, relaxed)
		})
	}
}

func TestAccuracyProbability(t *testing.T) {
	assert.InDelta(t, 0.88, AccuracyProbability(0.5, 20, 20), 1e-9)
	assert.InDelta(t, 0.78, AccuracyProbability(0.5, 30, 20), 1e-9)
	assert.InDelta(t, 0.94, AccuracyProbability(0.98, 20, 20), 1e-9)
	assert.InDelta(t, 0.4, AccuracyProbability(-1, 40, 20), 1e-9)
}

func TestAccuracyProbability_AlwaysBounded(t *testing.T) {
	const tempPref = 20.0
	for ci := 0; ci <= 100; ci++ {
		confidence := float64(ci) / 100
		prev := -1.0
		// sst offsets from 0 to 12 degrees cover temp_match from 1 down to 0
		for oi := 0; oi <= 48; oi++ {
			sst := tempPref + float64(oi)*0.25
			match := TemperatureMatch(sst, tempPref)
			require.GreaterOrEqual(t, match, 0.0)
			require.LessOrEqual(t, match, 1.0)

			p := AccuracyProbability(confidence, sst, tempPref)
			assert.GreaterOrEqual(t, p, MinAccuracyProbability, "confidence=%v sst=%v", confidence, sst)
			assert.LessOrEqual(t, p, MaxAccuracyProbability, "confidence=%v sst=%v", confidence, sst)

			below := AccuracyProbability(confidence, tempPref-float64(oi)*0.25, tempPref)
			assert.InDelta(t, p, below, 1e-12)

			if prev >= 0 {
				assert.LessOrEqual(t, p, prev+1e-12, "a worse temperature match never raises the probability")
			}
			prev = p
		}
	}
}

func TestTagConfidence_AlwaysBounded(t *testing.T) {
	s := sampling.New(11)
	for i := 0; i < 10000; i++ {
		intensity := s.Uniform(-0.5, 1.5)
		ph := s.Uniform(0, 7)
		bite := s.Uniform(0, 1200)
		speed := s.Uniform(0, 8)

		c := TagConfidence(intensity, ph, bite, speed)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 0.95)

		stronger := TagConfidence(intensity+0.3, ph-0.8, bite+150, speed+1)
		assert.GreaterOrEqual(t, stronger, c, "stronger readings never lower the confidence")
	}
}

func TestTagConfidence(t *testing.T) {
	tests := []struct {
		name                string
		intensity, ph, bite float64
		speed               float64
		want                float64
	}{
		{"all top rungs capped", 0.9, 1.5, 500, 4.0, 0.72},
		{"middle rungs", 0.7, 2.5, 300, 3.0, 0.55},
		{"bottom rungs", 0.5, 3.0, 200, 2.0, 0.33},
		{"nothing", 0.1, 4.0, 50, 1.0, 0},
		{"boundaries are exclusive", 0.8, 2.0, 400, 3.5, 0.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TagConfidence(tt.intensity, tt.ph, tt.bite, tt.speed), 1e-9)
		})
	}
}

func TestSimulator_Simulate(t *testing.T) {
	predictions := []models.SatellitePrediction{
		prediction("SAT_001", 0.8, 21, models.PreySmallFish),
		prediction("SAT_002", 0.6, 22, models.PreyPlanktonBloom),
		prediction("SAT_003", 0.5, 19, models.PreySquidCephalopods),
	}
	known := map[string]models.SatellitePrediction{}
	for _, p := range predictions {
		known[p.ID] = p
	}

	events, st := NewSimulator(testRegion).Simulate(predictions, sampling.New(42), testNow)

	assert.Equal(t, DefaultSharkCount, st.Sharks)
	assert.Zero(t, st.SkippedEvents)
	assert.Equal(t, st.TargetEvents, st.Events)
	assert.Len(t, events, st.Events)
	assert.GreaterOrEqual(t, len(events), DefaultSharkCount*DefaultMinEvents)
	assert.LessOrEqual(t, len(events), DefaultSharkCount*DefaultMaxEvents)

	seen := map[string]bool{}
	for _, e := range events {
		require.Contains(t, known, e.PredictionID)
		pred := known[e.PredictionID]

		assert.Regexp(t, tagIDRe, e.TagID)
		assert.NotRegexp(t, `_00$`, e.TagID)
		assert.False(t, seen[e.TagID], "duplicate tag id %s", e.TagID)
		seen[e.TagID] = true

		assert.True(t, testRegion.Contains(models.GeographicPoint{Latitude: e.Latitude, Longitude: e.Longitude}))
		assert.InDelta(t, pred.Sample.Point.Latitude, e.Latitude, 0.01)
		assert.Equal(t, pred.PredictedPrey, e.PredictedPrey)
		assert.Equal(t, pred.Confidence(), e.SatelliteConfidence)
		assert.Equal(t, e.Correct(), e.ActualPrey == e.PredictedPrey)

		assert.True(t, e.FeedingIntensity >= 0 && e.FeedingIntensity <= 1)
		if e.FeedingIntensity > 0.7 {
			assert.True(t, e.StomachPH >= 1.2 && e.StomachPH <= 2.2)
		} else {
			assert.True(t, e.StomachPH >= 2.8 && e.StomachPH <= 4.2)
		}
		assert.LessOrEqual(t, e.TagConfidence, models.MaxTagConfidence)
		assert.True(t, e.WaterTemperature >= MinWaterTemp && e.WaterTemperature <= MaxWaterTemp)
		assert.True(t, e.BatteryLevel >= MinBattery && e.BatteryLevel <= 100)
		assert.True(t, e.SignalStrength >= -88 && e.SignalStrength < -42)

		age := testNow.Sub(e.Timestamp)
		assert.True(t, age >= time.Hour && age < 168*time.Hour)

		size := e.Shark.SizeM
		assert.True(t, size >= e.Shark.Species.SizeMin-0.05 && size <= e.Shark.Species.SizeMax+0.05)
	}
}

func TestSimulator_EmptyPoolSkips(t *testing.T) {
	predictions := []models.SatellitePrediction{
		prediction("SAT_001", 0.2, 21, models.PreySmallFish),
	}

	sim := NewSimulator(testRegion)
	sim.MinEvents, sim.MaxEvents = 8, 8
	events, st := sim.Simulate(predictions, sampling.New(1), testNow)

	assert.Empty(t, events)
	assert.Equal(t, DefaultSharkCount*8, st.SkippedEvents)
	assert.Equal(t, DefaultSharkCount, st.RelaxedSearches)
}

func TestSimulator_Deterministic(t *testing.T) {
	predictions := []models.SatellitePrediction{
		prediction("SAT_001", 0.8, 21, models.PreySmallFish),
		prediction("SAT_002", 0.45, 25, models.PreyMixedDiet),
	}
	a, _ := NewSimulator(testRegion).Simulate(predictions, sampling.New(9), testNow)
	b, _ := NewSimulator(testRegion).Simulate(predictions, sampling.New(9), testNow)
	assert.Equal(t, a, b)
}
