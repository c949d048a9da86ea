package environment

import (
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

// DefaultHotspots are the coastal locations around Sydney that bias sample placement
var DefaultHotspots = []models.Hotspot{
	{Name: "Sydney Harbour", Point: models.GeographicPoint{Latitude: -33.8688, Longitude: 151.2093}, Activity: 0.9},
	{Name: "Bondi Beach", Point: models.GeographicPoint{Latitude: -33.8915, Longitude: 151.2767}, Activity: 0.8},
	{Name: "Manly Beach", Point: models.GeographicPoint{Latitude: -33.7969, Longitude: 151.2899}, Activity: 0.7},
	{Name: "Cronulla Beach", Point: models.GeographicPoint{Latitude: -34.0281, Longitude: 151.1789}, Activity: 0.6},
	{Name: "Coogee Beach", Point: models.GeographicPoint{Latitude: -33.9205, Longitude: 151.2584}, Activity: 0.5},
}

// DefaultRegion is the Sydney coastal box the hotspots sit in
func DefaultRegion() spatial.Region {
	return spatial.NewRegion("Sydney Waters", -34.5, -33.0, 150.5, 152.0, -33.8688, 151.2093)
}
