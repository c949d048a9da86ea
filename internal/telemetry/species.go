package telemetry

import "github.com/jengzang/sharktrack-backend-go/internal/models"

// DefaultSpecies are the profiles tags are drawn from
var DefaultSpecies = []models.SpeciesProfile{
	{Name: "Great White", TempPref: 20.0, SizeMin: 3.5, SizeMax: 5.2, Aggression: 0.9},
	{Name: "Tiger Shark", TempPref: 22.5, SizeMin: 3.0, SizeMax: 4.5, Aggression: 0.8},
	{Name: "Bull Shark", TempPref: 24.0, SizeMin: 2.8, SizeMax: 4.0, Aggression: 0.85},
	{Name: "Hammerhead", TempPref: 21.0, SizeMin: 3.2, SizeMax: 4.5, Aggression: 0.6},
	{Name: "Bronze Whaler", TempPref: 19.0, SizeMin: 2.5, SizeMax: 3.8, Aggression: 0.4},
}
