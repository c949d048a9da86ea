package telemetry

import (
	"math"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
)

// Candidate pool thresholds
const (
	MinCandidateConfidence     = 0.4
	RelaxedCandidateConfidence = 0.3
	MaxTemperatureDeviation    = 6.0
)

// CandidatePool returns the predictions a shark of the given species may be validating.
// The strict pool needs confidence above 0.4 and sst within 6 °C of the species preference;
// when it is empty the pool relaxes to confidence above 0.3 alone. relaxed reports the fallback.
func CandidatePool(predictions []models.SatellitePrediction, species models.SpeciesProfile) (pool []models.SatellitePrediction, relaxed bool) {
	for _, p := range predictions {
		if p.Confidence() > MinCandidateConfidence &&
			math.Abs(p.Sample.SeaSurfaceTemperature-species.TempPref) < MaxTemperatureDeviation {
			pool = append(pool, p)
		}
	}
	if len(pool) > 0 {
		return pool, false
	}

	for _, p := range predictions {
		if p.Confidence() > RelaxedCandidateConfidence {
			pool = append(pool, p)
		}
	}
	return pool, true
}
