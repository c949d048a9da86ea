// Package habitat scores foraging suitability and classifies likely prey from ocean fields.
package habitat

import (
	"math"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/stats"
)

const (
	optimalSST         = 20.5
	thermalTolerance   = 3.2
	productivityScale  = 12.0
	productivityNorm   = 37.0 // 1 + 3·12: chlorophyll of 3 scores 1.0
	frontalThreshold   = 0.1
	frontalSaturation  = 0.3
	frontalBaseline    = 0.4
	planktonSaturation = 35000.0
	preySteepness      = 6.0
	preyMidpoint       = 0.4
	scoreNoise         = 0.02
	scorePrecision     = 4
)

// Weights are the composite weights of the five sub-scores
type Weights struct {
	Thermal      float64
	Productivity float64
	Frontal      float64
	Prey         float64
	Coastal      float64
}

// DefaultWeights sum to 1
var DefaultWeights = Weights{
	Thermal:      0.30,
	Productivity: 0.35,
	Frontal:      0.20,
	Prey:         0.10,
	Coastal:      0.05,
}

// Components holds the five sub-scores of one sample
type Components struct {
	Thermal      float64 `json:"thermal"`
	Productivity float64 `json:"productivity"`
	Frontal      float64 `json:"frontal"`
	Prey         float64 `json:"prey"`
	Coastal      float64 `json:"coastal"`
}

// ThermalScore is a Gaussian kernel around the optimal temperature
func ThermalScore(sst float64) float64 {
	d := sst - optimalSST
	return math.Exp(-(d * d) / (2 * thermalTolerance * thermalTolerance))
}

// ProductivityScore is log-scaled chlorophyll
func ProductivityScore(chl float64) float64 {
	if chl <= 0 {
		return 0.1
	}
	return math.Log(1+chl*productivityScale) / math.Log(productivityNorm)
}

// FrontalScore rewards strong sea-surface-height anomalies
func FrontalScore(ssh float64) float64 {
	a := math.Abs(ssh)
	if a <= frontalThreshold {
		return frontalBaseline
	}
	return math.Min(1, a/frontalSaturation)
}

// PreyScore is a logistic response to normalized plankton density
func PreyScore(plankton float64) float64 {
	x := math.Min(plankton/planktonSaturation, 1)
	return 1 / (1 + math.Exp(-preySteepness*(x-preyMidpoint)))
}

// CoastalScore prefers the near-shore band
func CoastalScore(distance float64) float64 {
	switch {
	case distance >= 0.05 && distance <= 0.3:
		return 1.0
	case distance < 0.05:
		return 0.7
	default:
		return math.Max(0.3, 1-(distance-0.3)/0.4)
	}
}

// Scorer combines sub-scores into a habitat suitability index
type Scorer struct {
	Weights Weights
}

// NewScorer returns a scorer with the default weights
func NewScorer() *Scorer {
	return &Scorer{Weights: DefaultWeights}
}

// Components computes the five sub-scores of a sample
func (sc *Scorer) Components(sample models.EnvironmentalSample) Components {
	return Components{
		Thermal:      ThermalScore(sample.SeaSurfaceTemperature),
		Productivity: ProductivityScore(sample.ChlorophyllA),
		Frontal:      FrontalScore(sample.SSHAnomaly),
		Prey:         PreyScore(sample.PlanktonDensity),
		Coastal:      CoastalScore(sample.DistanceFromCoast),
	}
}

// Composite is the weighted sum adjusted by environmental impact, before noise and clamping
func (sc *Scorer) Composite(sample models.EnvironmentalSample) float64 {
	c := sc.Components(sample)
	w := sc.Weights
	hsi := w.Thermal*c.Thermal +
		w.Productivity*c.Productivity +
		w.Frontal*c.Frontal +
		w.Prey*c.Prey +
		w.Coastal*c.Coastal
	return hsi * (1 + sample.EnvironmentalImpact)
}

// Finalize perturbs, clamps and rounds a composite value, then buckets the rounded value
func Finalize(composite, noise float64) models.HabitatScore {
	value := stats.Clamp(composite+noise, models.MinHabitatScore, models.MaxHabitatScore)
	return models.NewHabitatScore(stats.Round(value, scorePrecision))
}

// Score draws the perturbation and returns the final score of a sample
func (sc *Scorer) Score(sample models.EnvironmentalSample, s *sampling.Sampler) models.HabitatScore {
	return Finalize(sc.Composite(sample), s.Uniform(-scoreNoise, scoreNoise))
}
