package domain

// VegetationType classifies ground cover by clearing difficulty.
type VegetationType string

const (
	VegetationGrassland   VegetationType = "grassland"
	VegetationLightshrub  VegetationType = "lightshrub"
	VegetationMediumscrub VegetationType = "mediumscrub"
	VegetationHeavyforest VegetationType = "heavyforest"
)

// VegetationTypes lists every type in ascending clearing difficulty. This is
// also the fixed enumeration order used to break ties when two types cover
// the same cumulative distance.
var VegetationTypes = []VegetationType{
	VegetationGrassland,
	VegetationLightshrub,
	VegetationMediumscrub,
	VegetationHeavyforest,
}

// ValidVegetationType reports whether t is a member of the taxonomy.
func ValidVegetationType(t VegetationType) bool {
	for _, v := range VegetationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// VegetationFactor is the clearing-rate divisor for a vegetation type.
func VegetationFactor(t VegetationType) float64 {
	switch t {
	case VegetationGrassland:
		return 1.0
	case VegetationLightshrub:
		return 1.1
	case VegetationMediumscrub:
		return 1.5
	default:
		return 2.0
	}
}
