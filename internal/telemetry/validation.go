package telemetry

import (
	"math"

	"github.com/jengzang/sharktrack-backend-go/internal/stats"
)

// Accuracy probability bounds
const (
	MinAccuracyProbability = 0.4
	MaxAccuracyProbability = 0.94
)

// TemperatureMatch is 1 at the preferred temperature and falls to 0 at 10 °C away
func TemperatureMatch(sst, tempPref float64) float64 {
	return 1 - math.Min(1, math.Abs(sst-tempPref)/10)
}

// AccuracyProbability is the chance that the tag confirms the predicted prey
func AccuracyProbability(confidence, sst, tempPref float64) float64 {
	p := 0.78 + (confidence-0.5)*0.3 + 0.1*TemperatureMatch(sst, tempPref)
	return stats.Clamp(p, MinAccuracyProbability, MaxAccuracyProbability)
}

type rung struct {
	above bool
	limit float64
	bonus float64
}

var (
	intensityLadder = []rung{{true, 0.8, 0.25}, {true, 0.6, 0.20}, {true, 0.4, 0.15}}
	phLadder        = []rung{{false, 2.0, 0.20}, {false, 2.8, 0.15}, {false, 3.5, 0.10}}
	biteLadder      = []rung{{true, 400, 0.15}, {true, 250, 0.12}, {true, 150, 0.08}}
	speedLadder     = []rung{{true, 3.5, 0.12}, {true, 2.5, 0.08}}
)

// climb returns the bonus of the first rung v satisfies
func climb(ladder []rung, v float64) float64 {
	for _, r := range ladder {
		if (r.above && v > r.limit) || (!r.above && v < r.limit) {
			return r.bonus
		}
	}
	return 0
}

// TagConfidence fuses the sensor readings into the tag's confidence, capped at 0.95
// and rounded to 3 decimals
func TagConfidence(intensity, ph, biteForce, speed float64) float64 {
	c := climb(intensityLadder, intensity) +
		climb(phLadder, ph) +
		climb(biteLadder, biteForce) +
		climb(speedLadder, speed)
	return stats.Round(math.Min(c, 0.95), 3)
}
