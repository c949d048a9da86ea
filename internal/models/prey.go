package models

// PreyType is the prey category predicted for, or observed at, a location
type PreyType string

const (
	PreyPlanktonBloom    PreyType = "plankton_bloom"
	PreySmallFish        PreyType = "small_fish"
	PreySquidCephalopods PreyType = "squid_cephalopods"
	PreyMixedDiet        PreyType = "mixed_diet"
)

// AllPreyTypes lists every prey category in a stable order
var AllPreyTypes = []PreyType{
	PreySmallFish,
	PreyPlanktonBloom,
	PreySquidCephalopods,
	PreyMixedDiet,
}

// OtherPreyTypes returns every category except p, in AllPreyTypes order
func OtherPreyTypes(p PreyType) []PreyType {
	others := make([]PreyType, 0, len(AllPreyTypes)-1)
	for _, candidate := range AllPreyTypes {
		if candidate != p {
			others = append(others, candidate)
		}
	}
	return others
}

// Valid reports whether p is a known category
func (p PreyType) Valid() bool {
	for _, candidate := range AllPreyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}
