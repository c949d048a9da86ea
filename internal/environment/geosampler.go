package environment

import (
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/sampling"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

// Site is a sampled coordinate with the label it will carry in the prediction table
type Site struct {
	Point        models.GeographicPoint
	LocationName string
}

// GeoSampler places sample coordinates, first around hotspots and then uniformly
type GeoSampler struct {
	Region          spatial.Region
	Hotspots        []models.Hotspot
	Count           int
	HotspotFraction float64 // share of samples placed around hotspots
	JitterDegrees   float64 // σ of the per-axis Gaussian jitter around a hotspot
}

// NewGeoSampler returns a sampler with the default placement parameters
func NewGeoSampler(region spatial.Region, hotspots []models.Hotspot, count int) *GeoSampler {
	return &GeoSampler{
		Region:          region,
		Hotspots:        hotspots,
		Count:           count,
		HotspotFraction: 0.6,
		JitterDegrees:   0.15,
	}
}

// HotspotSamples returns how many of the samples are placed around hotspots
func (g *GeoSampler) HotspotSamples() int {
	if len(g.Hotspots) == 0 {
		return 0
	}
	return int(float64(g.Count) * g.HotspotFraction)
}

// Sample returns Count sites, all clamped into the region
func (g *GeoSampler) Sample(s *sampling.Sampler) []Site {
	sites := make([]Site, 0, g.Count)
	nearHotspots := g.HotspotSamples()
	latMin, latMax := g.Region.LatRange()
	lonMin, lonMax := g.Region.LonRange()

	for i := 0; i < g.Count; i++ {
		var site Site
		if i < nearHotspots {
			hotspot := sampling.Choice(s, g.Hotspots)
			site = Site{
				Point: models.GeographicPoint{
					Latitude:  hotspot.Point.Latitude + s.Normal(0, g.JitterDegrees),
					Longitude: hotspot.Point.Longitude + s.Normal(0, g.JitterDegrees),
				},
				LocationName: hotspot.Name,
			}
		} else {
			site = Site{
				Point: models.GeographicPoint{
					Latitude:  s.Uniform(latMin, latMax),
					Longitude: s.Uniform(lonMin, lonMax),
				},
				LocationName: g.Region.Name,
			}
		}
		site.Point = g.Region.Clamp(site.Point)
		sites = append(sites, site)
	}

	return sites
}
