package domain

// SlopeCategory classifies the incline of a route segment.
type SlopeCategory string

const (
	SlopeFlat      SlopeCategory = "flat"
	SlopeMedium    SlopeCategory = "medium"
	SlopeSteep     SlopeCategory = "steep"
	SlopeVerySteep SlopeCategory = "very_steep"
)

// SlopeCategories lists every category in ascending steepness order.
var SlopeCategories = []SlopeCategory{SlopeFlat, SlopeMedium, SlopeSteep, SlopeVerySteep}

// Canonical slope-category boundaries in degrees. An older label table used a
// 10/25/45 variant; that set is retired so that presentation labels and
// compatibility ranking always agree on the same boundaries.
const (
	FlatMaxDegrees   = 10.0
	MediumMaxDegrees = 20.0
	SteepMaxDegrees  = 30.0
)

// CategorizeSlope maps a slope in degrees to its category.
func CategorizeSlope(slopeDegrees float64) SlopeCategory {
	switch {
	case slopeDegrees <= FlatMaxDegrees:
		return SlopeFlat
	case slopeDegrees <= MediumMaxDegrees:
		return SlopeMedium
	case slopeDegrees <= SteepMaxDegrees:
		return SlopeSteep
	default:
		return SlopeVerySteep
	}
}

// TerrainLevel is the ordinal ground-difficulty class derived from slope.
type TerrainLevel string

const (
	TerrainEasy      TerrainLevel = "easy"
	TerrainModerate  TerrainLevel = "moderate"
	TerrainDifficult TerrainLevel = "difficult"
	TerrainExtreme   TerrainLevel = "extreme"
)

// TerrainLevels lists every level in ascending difficulty order.
var TerrainLevels = []TerrainLevel{TerrainEasy, TerrainModerate, TerrainDifficult, TerrainExtreme}

// TerrainRank returns the ordinal rank of a terrain level
// (easy=0 < moderate=1 < difficult=2 < extreme=3), or -1 for an
// unrecognized level.
func TerrainRank(level TerrainLevel) int {
	switch level {
	case TerrainEasy:
		return 0
	case TerrainModerate:
		return 1
	case TerrainDifficult:
		return 2
	case TerrainExtreme:
		return 3
	default:
		return -1
	}
}

// TerrainForSlope derives the required terrain level from a route's maximum
// slope. The boundaries mirror the slope-category boundaries.
func TerrainForSlope(maxSlopeDegrees float64) TerrainLevel {
	switch {
	case maxSlopeDegrees <= FlatMaxDegrees:
		return TerrainEasy
	case maxSlopeDegrees <= MediumMaxDegrees:
		return TerrainModerate
	case maxSlopeDegrees <= SteepMaxDegrees:
		return TerrainDifficult
	default:
		return TerrainExtreme
	}
}

// TerrainForCategory maps a slope category to the terrain level it implies.
func TerrainForCategory(category SlopeCategory) TerrainLevel {
	switch category {
	case SlopeFlat:
		return TerrainEasy
	case SlopeMedium:
		return TerrainModerate
	case SlopeSteep:
		return TerrainDifficult
	default:
		return TerrainExtreme
	}
}

// TerrainFactor is the clearing-rate divisor for a terrain level.
func TerrainFactor(level TerrainLevel) float64 {
	switch level {
	case TerrainEasy:
		return 1.0
	case TerrainModerate:
		return 1.3
	case TerrainDifficult:
		return 1.7
	default:
		return 2.2
	}
}
