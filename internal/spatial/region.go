package spatial

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
)

// Region is a lat/lon bounding box with a designated center, working in degree space.
// X is longitude and Y is latitude.
type Region struct {
	Name   string
	bounds r2.Rect
	center r2.Point
}

// NewRegion creates a region from its bounds and center
func NewRegion(name string, latMin, latMax, lonMin, lonMax, centerLat, centerLon float64) Region {
	return Region{
		Name: name,
		bounds: r2.Rect{
			X: r1.Interval{Lo: lonMin, Hi: lonMax},
			Y: r1.Interval{Lo: latMin, Hi: latMax},
		},
		center: r2.Point{X: centerLon, Y: centerLat},
	}
}

// Center returns the designated center of the region
func (r Region) Center() models.GeographicPoint {
	return fromR2(r.center)
}

// LatRange returns the latitude bounds
func (r Region) LatRange() (float64, float64) {
	return r.bounds.Y.Lo, r.bounds.Y.Hi
}

// LonRange returns the longitude bounds
func (r Region) LonRange() (float64, float64) {
	return r.bounds.X.Lo, r.bounds.X.Hi
}

// Clamp returns the closest point inside the region
func (r Region) Clamp(p models.GeographicPoint) models.GeographicPoint {
	return fromR2(r.bounds.ClampPoint(toR2(p)))
}

// Contains reports whether p lies inside the region, bounds included
func (r Region) Contains(p models.GeographicPoint) bool {
	return r.bounds.ContainsPoint(toR2(p))
}

// DistanceFromCenter is the degree-space Euclidean distance from p to the center
func (r Region) DistanceFromCenter(p models.GeographicPoint) float64 {
	return DegreeDistance(p, r.Center())
}

// DegreeDistance is the planar Euclidean distance between two points in degrees
func DegreeDistance(a, b models.GeographicPoint) float64 {
	return toR2(a).Sub(toR2(b)).Norm()
}

func toR2(p models.GeographicPoint) r2.Point {
	return r2.Point{X: p.Longitude, Y: p.Latitude}
}

func fromR2(p r2.Point) models.GeographicPoint {
	return models.GeographicPoint{Latitude: p.Y, Longitude: p.X}
}
