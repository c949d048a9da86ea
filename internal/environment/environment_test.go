package environment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

func testRegion() spatial.Region {
	return spatial.NewRegion("Sydney Waters", -34.5, -33.0, 150.5, 152.0, -33.8688, 151.2093)
}

func pointEvent(id, category string, lon, lat float64) models.EnvironmentalEvent {
	coords, _ := json.Marshal([]float64{lon, lat})
	return models.EnvironmentalEvent{
		ID:         id,
		Categories: []models.EventCategory{{Title: category}},
		Geometry:   []models.EventGeometry{{Type: "Point", Coordinates: coords}},
	}
}

func TestGeoSampler_Sample(t *testing.T) {
	region := testRegion()
	g := NewGeoSampler(region, DefaultHotspots, 150)
	sites := g.Sample(sampling.New(1))

	require.Len(t, sites, 150)
	assert.Equal(t, 90, g.HotspotSamples())

	hotspotNames := map[string]bool{}
	for _, h := range DefaultHotspots {
		hotspotNames[h.Name] = true
	}

	for i, site := range sites {
		assert.True(t, region.Contains(site.Point), "site %d outside region", i)
		if i < 90 {
			assert.True(t, hotspotNames[site.LocationName], "site %d: %s", i, site.LocationName)
		} else {
			assert.Equal(t, "Sydney Waters", site.LocationName)
		}
	}
}

func TestGeoSampler_NoHotspots(t *testing.T) {
	g := NewGeoSampler(testRegion(), nil, 10)
	sites := g.Sample(sampling.New(1))

	require.Len(t, sites, 10)
	for _, site := range sites {
		assert.Equal(t, "Sydney Waters", site.LocationName)
	}
}

func TestFieldSynthesizer_Ranges(t *testing.T) {
	region := testRegion()
	s := sampling.New(99)
	sites := NewGeoSampler(region, DefaultHotspots, 500).Sample(s)

	for _, day := range []int{1, 80, 172, 264, 365} {
		synth := &FieldSynthesizer{Region: region, DayOfYear: day}
		for _, site := range sites {
			sample := synth.Synthesize(site, s)
			assert.GreaterOrEqual(t, sample.ChlorophyllA, MinChlorophyll)
			assert.LessOrEqual(t, sample.ChlorophyllA, MaxChlorophyll)
			assert.GreaterOrEqual(t, sample.SeaSurfaceTemperature, MinSST)
			assert.LessOrEqual(t, sample.SeaSurfaceTemperature, MaxSST)
			assert.GreaterOrEqual(t, sample.PlanktonDensity, MinPlankton)
			assert.LessOrEqual(t, sample.PlanktonDensity, MaxPlankton)
			assert.Zero(t, sample.EnvironmentalImpact)
			assert.Zero(t, sample.NearbyEventCount)
			assert.Equal(t, site.LocationName, sample.LocationName)
		}
	}
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, 2.5, BaseChlorophyll(0.05))
	assert.Equal(t, 1.2, BaseChlorophyll(0.1))
	assert.Equal(t, 1.2, BaseChlorophyll(0.29))
	assert.Equal(t, 0.4, BaseChlorophyll(0.3))

	assert.Zero(t, CoastalCooling(0))
	assert.InDelta(t, -0.75, CoastalCooling(0.2), 1e-12)
	assert.InDelta(t, -1.5, CoastalCooling(0.4), 1e-12)
	assert.InDelta(t, -1.5, CoastalCooling(3), 1e-12)

	// Seasonal SST peaks a quarter year after the phase offset
	assert.InDelta(t, 24.5, SeasonalSST(30+365/4), 0.01)
	assert.InDelta(t, 20.5, SeasonalSST(30), 1e-12)

	assert.InDelta(t, 1.0, ChlorophyllSeasonalFactor(0), 1e-12)
}

func TestNewFieldSynthesizer_DayOfYear(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	synth := NewFieldSynthesizer(testRegion(), nil, now)
	assert.Equal(t, 32, synth.DayOfYear)
}

func TestEventField_Influence(t *testing.T) {
	center := models.GeographicPoint{Latitude: -33.8688, Longitude: 151.2093}

	tests := []struct {
		name       string
		events     []models.EnvironmentalEvent
		wantImpact float64
		wantCount  int
		wantSkip   int
	}{
		{
			name:   "empty feed",
			events: nil,
		},
		{
			name:       "nearby storm",
			events:     []models.EnvironmentalEvent{pointEvent("s1", "Severe Storms", 151.5, -33.5)},
			wantImpact: StormImpact,
			wantCount:  1,
		},
		{
			name:       "nearby sea event",
			events:     []models.EnvironmentalEvent{pointEvent("i1", "Sea and Lake Ice", 151.0, -34.0)},
			wantImpact: SeaImpact,
			wantCount:  1,
		},
		{
			name:      "nearby but neither storm nor sea",
			events:    []models.EnvironmentalEvent{pointEvent("w1", "Wildfires", 151.0, -34.0)},
			wantCount: 1,
		},
		{
			name:   "far away storm",
			events: []models.EnvironmentalEvent{pointEvent("s2", "Severe Storms", 160.0, -20.0)},
		},
		{
			name: "malformed geometry is skipped",
			events: []models.EnvironmentalEvent{
				{
					ID:         "bad",
					Categories: []models.EventCategory{{Title: "Severe Storms"}},
					Geometry: []models.EventGeometry{
						{Type: "Polygon", Coordinates: json.RawMessage(`[[[151.2, -33.8], [151.3, -33.9]]]`)},
					},
				},
				pointEvent("s3", "Severe Storms", 151.2, -33.9),
			},
			wantImpact: StormImpact,
			wantCount:  1,
			wantSkip:   1,
		},
		{
			name: "short coordinate arrays are ignored",
			events: []models.EnvironmentalEvent{
				{
					ID:         "short",
					Categories: []models.EventCategory{{Title: "Severe Storms"}},
					Geometry:   []models.EventGeometry{{Coordinates: json.RawMessage(`[151.2]`)}},
				},
			},
		},
		{
			name: "every nearby geometry contributes",
			events: []models.EnvironmentalEvent{
				{
					ID:         "track",
					Categories: []models.EventCategory{{Title: "Severe Storms"}},
					Geometry: []models.EventGeometry{
						{Coordinates: json.RawMessage(`[151.0, -33.0]`)},
						{Coordinates: json.RawMessage(`[151.5, -34.0]`)},
					},
				},
			},
			wantImpact: 2 * StormImpact,
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewEventField(tt.events, DefaultEventRadius)
			inf := field.Influence(center)
			assert.InDelta(t, tt.wantImpact, inf.Impact, 1e-12)
			assert.Equal(t, tt.wantCount, inf.NearbyCount)
			assert.Equal(t, tt.wantSkip, field.Skipped())
		})
	}
}

func TestEventField_Nil(t *testing.T) {
	var field *EventField
	assert.Equal(t, EventInfluence{}, field.Influence(models.GeographicPoint{}))
	assert.Zero(t, field.Skipped())
}
