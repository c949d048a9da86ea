package habitat

import "github.com/jengzang/sharktrack-backend-go/internal/models"

// ClassifyPrey maps ocean fields to the most likely prey category. It is pure.
func ClassifyPrey(chl, sst, plankton float64) models.PreyType {
	switch {
	case plankton > 25000 && chl > 2.5:
		return models.PreyPlanktonBloom
	case chl >= 1.0 && chl <= 3.0 && sst > 19:
		return models.PreySmallFish
	case chl < 1.0 && sst < 19:
		return models.PreySquidCephalopods
	default:
		return models.PreyMixedDiet
	}
}

// ClassifySample applies ClassifyPrey to a sample
func ClassifySample(sample models.EnvironmentalSample) models.PreyType {
	return ClassifyPrey(sample.ChlorophyllA, sample.SeaSurfaceTemperature, sample.PlanktonDensity)
}
