package models

// SpeciesProfile describes the behavioral constants of one shark species
type SpeciesProfile struct {
	Name       string  `json:"name"`
	TempPref   float64 `json:"temp_pref"` // °C
	SizeMin    float64 `json:"size_min"`  // metres
	SizeMax    float64 `json:"size_max"`  // metres
	Aggression float64 `json:"aggression"`
}

// SharkTag is one simulated tagged animal
type SharkTag struct {
	ID      string         `json:"shark_id"`
	Species SpeciesProfile `json:"species"`
	SizeM   float64        `json:"size_m"`
}
