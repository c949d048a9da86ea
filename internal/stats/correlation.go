package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PearsonCorrelation is the sample correlation of x and y in [-1, 1]. Mismatched or
// short inputs and a constant series yield 0.
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return Clamp(r, -1, 1)
}
