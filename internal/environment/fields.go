package environment

import (
	"math"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
	"github.com/jengzang/sharktrack-backend-go/internal/stats"
)

// Physical ranges of the synthesized fields
const (
	MinChlorophyll = 0.05
	MaxChlorophyll = 10.0
	MinSST         = 15.0
	MaxSST         = 26.0
	MinPlankton    = 800.0
	MaxPlankton    = 45000.0
)

const (
	baseSST            = 20.5
	sstSeasonalAmp     = 4.0
	sstPhaseDays       = 30.0
	coastalCooling     = 1.5
	coolingSaturation  = 0.4
	sstNoiseSigma      = 1.2
	chlSeasonalAmp     = 0.3
	chlNoiseSigma      = 0.5
	sshSigma           = 0.2
	planktonPerChl     = 7000.0
	planktonNoiseSigma = 0.3
	daysPerYear        = 365.0
)

// FieldSynthesizer derives ocean fields for sampled sites
type FieldSynthesizer struct {
	Region spatial.Region
	Events *EventField
	// DayOfYear drives both seasonal sinusoids
	DayOfYear int
}

// NewFieldSynthesizer creates a synthesizer for the season of now
func NewFieldSynthesizer(region spatial.Region, events *EventField, now time.Time) *FieldSynthesizer {
	return &FieldSynthesizer{
		Region:    region,
		Events:    events,
		DayOfYear: now.YearDay(),
	}
}

// BaseChlorophyll is the tiered chlorophyll level for a distance band
func BaseChlorophyll(distance float64) float64 {
	switch {
	case distance < 0.1:
		return 2.5
	case distance < 0.3:
		return 1.2
	default:
		return 0.4
	}
}

// ChlorophyllSeasonalFactor scales chlorophyll through the year
func ChlorophyllSeasonalFactor(dayOfYear int) float64 {
	return 1 + chlSeasonalAmp*math.Sin(2*math.Pi*float64(dayOfYear)/daysPerYear)
}

// SeasonalSST is the basin temperature for the day, before coastal and noise terms
func SeasonalSST(dayOfYear int) float64 {
	return baseSST + sstSeasonalAmp*math.Sin(2*math.Pi*(float64(dayOfYear)-sstPhaseDays)/daysPerYear)
}

// CoastalCooling is the temperature offset for a distance from the basin center
func CoastalCooling(distance float64) float64 {
	return -coastalCooling * math.Min(distance/coolingSaturation, 1.0)
}

// Synthesize derives the environmental sample of one site
func (f *FieldSynthesizer) Synthesize(site Site, s *sampling.Sampler) models.EnvironmentalSample {
	distance := f.Region.DistanceFromCenter(site.Point)

	chl := BaseChlorophyll(distance) * ChlorophyllSeasonalFactor(f.DayOfYear) * s.LogNormal(0, chlNoiseSigma)
	chl = stats.Clamp(chl, MinChlorophyll, MaxChlorophyll)

	sst := SeasonalSST(f.DayOfYear) + CoastalCooling(distance) + s.Normal(0, sstNoiseSigma)
	sst = stats.Clamp(sst, MinSST, MaxSST)

	ssh := s.Normal(0, sshSigma)

	plankton := chl * planktonPerChl * (1 + s.Normal(0, planktonNoiseSigma))
	plankton = stats.Clamp(plankton, MinPlankton, MaxPlankton)

	influence := f.Events.Influence(site.Point)

	return models.EnvironmentalSample{
		Point:                 site.Point,
		LocationName:          site.LocationName,
		ChlorophyllA:          chl,
		SeaSurfaceTemperature: sst,
		SSHAnomaly:            ssh,
		PlanktonDensity:       plankton,
		DistanceFromCoast:     distance,
		EnvironmentalImpact:   influence.Impact,
		NearbyEventCount:      influence.NearbyCount,
	}
}
