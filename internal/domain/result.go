package domain

// CompatibilityLevel is the three-level verdict for one equipment item.
type CompatibilityLevel string

const (
	CompatibilityFull         CompatibilityLevel = "full"
	CompatibilityPartial      CompatibilityLevel = "partial"
	CompatibilityIncompatible CompatibilityLevel = "incompatible"
)

// CompatibilityRank orders verdicts for ranking: full < partial < incompatible.
func CompatibilityRank(level CompatibilityLevel) int {
	switch level {
	case CompatibilityFull:
		return 0
	case CompatibilityPartial:
		return 1
	default:
		return 2
	}
}

// CalculationResult is the time/cost estimate and verdict for one equipment
// item on one analyzed route. Results are recomputed fresh on every change
// to the route, vegetation or catalog and are never mutated afterwards; a
// new result set replaces the old one atomically at the call site.
type CalculationResult struct {
	EquipmentID   string
	EquipmentName string
	EquipmentType EquipmentType
	TimeHours     float64
	Cost          float64
	Compatibility CompatibilityLevel

	// OverLimitFraction is set for machinery evaluated under the
	// partial-tolerance rule: the fraction of the route whose implied
	// terrain exceeds the machine's rated terrain.
	OverLimitFraction *float64

	// Drops is set for aircraft only.
	Drops *int

	Note string
}
