package spatial

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used for arc lengths
const EarthRadiusMeters = 6371000.0

// HaversineDistance is the great-circle distance in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return arcMeters(s2.LatLngFromDegrees(lat1, lon1), s2.LatLngFromDegrees(lat2, lon2))
}

func arcMeters(a, b s2.LatLng) float64 {
	return a.Distance(b).Radians() * EarthRadiusMeters
}

func latLngs(track []models.GeographicPoint) []s2.LatLng {
	out := make([]s2.LatLng, len(track))
	for i, p := range track {
		out[i] = s2.LatLngFromDegrees(p.Latitude, p.Longitude)
	}
	return out
}

// PathLength sums the legs of a track in meters
func PathLength(track []models.GeographicPoint) float64 {
	ll := latLngs(track)
	var total float64
	for i := 1; i < len(ll); i++ {
		total += arcMeters(ll[i-1], ll[i])
	}
	return total
}

// Centroid is the spherical mean position of the track
func Centroid(track []models.GeographicPoint) models.GeographicPoint {
	if len(track) == 0 {
		return models.GeographicPoint{}
	}
	var sum s2.Point
	for _, ll := range latLngs(track) {
		sum = s2.Point{Vector: sum.Add(s2.PointFromLatLng(ll).Vector)}
	}
	if sum.Norm() == 0 {
		return track[0]
	}
	c := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return models.GeographicPoint{Latitude: c.Lat.Degrees(), Longitude: c.Lng.Degrees()}
}

// RadiusOfGyration is the RMS distance in meters of the track from its centroid
func RadiusOfGyration(track []models.GeographicPoint) float64 {
	if len(track) == 0 {
		return 0
	}
	c := Centroid(track)
	center := s2.LatLngFromDegrees(c.Latitude, c.Longitude)
	var sumSq float64
	for _, ll := range latLngs(track) {
		d := arcMeters(center, ll)
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(track)))
}
