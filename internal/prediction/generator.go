// Package prediction builds the satellite habitat prediction table.
package prediction

import (
	"fmt"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/environment"
	"github.com/jengzang/sharktrack-backend-go/internal/habitat"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
)

// Generator orchestrates site placement, field synthesis, scoring and prey classification
type Generator struct {
	Sites  *environment.GeoSampler
	Fields *environment.FieldSynthesizer
	Scorer *habitat.Scorer
}

// NewGenerator creates a prediction generator
func NewGenerator(sites *environment.GeoSampler, fields *environment.FieldSynthesizer, scorer *habitat.Scorer) *Generator {
	return &Generator{
		Sites:  sites,
		Fields: fields,
		Scorer: scorer,
	}
}

// PredictionID formats the sequential id of the i-th prediction (0-based)
func PredictionID(i int) string {
	return fmt.Sprintf("SAT_%03d", i+1)
}

// Generate returns one prediction per sampled site, in generation order.
// All rows share the run timestamp.
func (g *Generator) Generate(s *sampling.Sampler, now time.Time) []models.SatellitePrediction {
	sites := g.Sites.Sample(s)
	predictions := make([]models.SatellitePrediction, 0, len(sites))

	for i, site := range sites {
		sample := g.Fields.Synthesize(site, s)
		score := g.Scorer.Score(sample, s)

		predictions = append(predictions, models.SatellitePrediction{
			ID:            PredictionID(i),
			Sample:        sample,
			Score:         score,
			PredictedPrey: habitat.ClassifySample(sample),
			Timestamp:     now,
			LocationName:  site.LocationName,
		})
	}

	return predictions
}
