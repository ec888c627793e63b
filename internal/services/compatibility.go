package services

import (
	"fmt"
	"math"
	"sort"

	"firebreak-route-service/internal/domain"
)

// CompatibilityConfig holds the partial-tolerance business rules. The
// defaults are the fixed values the product ships with; deployments may
// override them.
type CompatibilityConfig struct {
	// PartialTolerance is the largest fraction of the route allowed to
	// exceed a machine's rated terrain while still being usable. Inclusive:
	// an over-limit fraction exactly at the tolerance is partial.
	PartialTolerance float64

	// PenaltyScale scales the time penalty for partially compatible
	// machinery: multiplier = 1 + PenaltyScale*overFraction.
	PenaltyScale float64
}

// DefaultCompatibilityConfig returns the shipped business rules.
func DefaultCompatibilityConfig() CompatibilityConfig {
	return CompatibilityConfig{PartialTolerance: 0.15, PenaltyScale: 2.0}
}

// timeTieHours is the window within which two results count as equally fast
// and fall through to the cost tie-break.
const timeTieHours = 0.1

// EvaluateRequest carries everything one evaluation needs. The engine holds
// no state of its own: results are a pure function of this input.
type EvaluateRequest struct {
	RouteDistanceMeters float64
	Track               *domain.TrackAnalysis
	Vegetation          *domain.VegetationAnalysis // optional when VegetationOverride is set
	VegetationOverride  domain.VegetationType      // empty means "use predominant"
	Equipment           []domain.Equipment
	Config              CompatibilityConfig // zero value means defaults
}

// EvaluateEquipment computes time, cost and a compatibility verdict for
// every equipment item and returns them ranked: full before partial before
// incompatible, fastest first within a tier, near-ties broken by cost.
func EvaluateEquipment(req EvaluateRequest) ([]domain.CalculationResult, error) {
	if req.Track == nil {
		return nil, fmt.Errorf("evaluate equipment: track analysis is required: %w", ErrInvalidInput)
	}
	if req.RouteDistanceMeters <= 0 {
		return nil, fmt.Errorf("evaluate equipment: route distance must be positive: %w", ErrInvalidInput)
	}

	vegetation := req.VegetationOverride
	if vegetation == "" {
		if req.Vegetation == nil {
			return nil, fmt.Errorf("evaluate equipment: vegetation analysis or override is required: %w", ErrInvalidInput)
		}
		vegetation = req.Vegetation.PredominantVegetation
	}
	if !domain.ValidVegetationType(vegetation) {
		return nil, fmt.Errorf("evaluate equipment: unknown vegetation type %q: %w", vegetation, ErrInvalidInput)
	}

	cfg := req.Config
	if cfg.PartialTolerance == 0 && cfg.PenaltyScale == 0 {
		cfg = DefaultCompatibilityConfig()
	}

	terrain := domain.TerrainForSlope(req.Track.MaxSlopeDegrees)
	factors := domain.TerrainFactor(terrain) * domain.VegetationFactor(vegetation)

	results := make([]domain.CalculationResult, 0, len(req.Equipment))
	for _, eq := range req.Equipment {
		switch e := eq.(type) {
		case *domain.Machinery:
			results = append(results, evaluateMachinery(e, req, cfg, terrain, vegetation, factors))
		case *domain.Aircraft:
			results = append(results, evaluateAircraft(e, req, terrain, vegetation))
		case *domain.HandCrew:
			results = append(results, evaluateHandCrew(e, req, terrain, vegetation, factors))
		default:
			// An item the engine cannot evaluate must never be reported
			// with a fabricated verdict; the evaluation as a whole fails.
			return nil, fmt.Errorf("evaluate equipment: unsupported equipment type %T: %w", eq, ErrInvalidInput)
		}
	}

	rankResults(results)
	return results, nil
}

func evaluateMachinery(
	m *domain.Machinery,
	req EvaluateRequest,
	cfg CompatibilityConfig,
	terrain domain.TerrainLevel,
	vegetation domain.VegetationType,
	factors float64,
) domain.CalculationResult {
	res := newResult(&m.EquipmentSpec)

	vegetationOK := m.AllowsVegetation(vegetation)
	terrainOK := m.MaxAllowedTerrainRank() >= domain.TerrainRank(terrain)

	multiplier := 1.0
	switch {
	case !vegetationOK:
		res.Compatibility = domain.CompatibilityIncompatible
		res.Note = fmt.Sprintf("vegetation %s is outside the allowed set", vegetation)
	case terrainOK:
		res.Compatibility = domain.CompatibilityFull
	default:
		// Terrain membership failed; relax by the fraction of route meters
		// whose implied terrain outranks the machine's rating.
		over := overLimitFraction(m, req.Track)
		res.OverLimitFraction = &over
		switch {
		case over == 0:
			res.Compatibility = domain.CompatibilityFull
		case over <= cfg.PartialTolerance:
			res.Compatibility = domain.CompatibilityPartial
			multiplier = 1 + cfg.PenaltyScale*over
			res.Note = fmt.Sprintf("%.0f%% of the route exceeds rated terrain; time penalty applied", over*100)
		default:
			res.Compatibility = domain.CompatibilityIncompatible
			res.Note = fmt.Sprintf("%.0f%% of the route exceeds rated terrain", over*100)
		}
	}

	// The slope ceiling is a hard cutoff, never subject to the tolerance rule.
	if m.MaxSlopeDegrees != nil && req.Track.MaxSlopeDegrees > *m.MaxSlopeDegrees {
		res.Compatibility = domain.CompatibilityIncompatible
		res.Note = fmt.Sprintf(
			"route max slope %.1f° exceeds machine limit %.1f°",
			req.Track.MaxSlopeDegrees, *m.MaxSlopeDegrees,
		)
	}

	rate, costPerHour := machineryRate(m, vegetation, req.Track.MaxSlopeDegrees, factors)
	res.TimeHours = req.RouteDistanceMeters / rate * multiplier
	if res.Compatibility != domain.CompatibilityIncompatible {
		res.Cost = res.TimeHours * costPerHour
	}

	return res
}

// overLimitFraction is the share of the route whose slope-distribution
// meters imply a terrain rank above the machine's highest allowed rank.
func overLimitFraction(m *domain.Machinery, track *domain.TrackAnalysis) float64 {
	if track.TotalDistanceMeters <= 0 {
		return 0
	}
	maxRank := m.MaxAllowedTerrainRank()

	var over float64
	for category, meters := range track.SlopeDistribution {
		if domain.TerrainRank(domain.TerrainForCategory(category)) > maxRank {
			over += meters
		}
	}
	return over / track.TotalDistanceMeters
}

// machineryRate picks the clearing rate and hourly cost for the current
// conditions. Measured performance rows for the vegetation win over the
// factor-derived nominal rate: the row with the smallest slope ceiling that
// still covers the route's max slope, falling back to the highest-ceiling
// row when none qualifies.
func machineryRate(
	m *domain.Machinery,
	vegetation domain.VegetationType,
	maxSlopeDegrees float64,
	factors float64,
) (rate, costPerHour float64) {
	var best, fallback *domain.PerformanceRow
	for i := range m.Performance {
		row := &m.Performance[i]
		if row.Vegetation != vegetation {
			continue
		}
		if fallback == nil || row.SlopeMaxDegrees > fallback.SlopeMaxDegrees {
			fallback = row
		}
		if row.SlopeMaxDegrees >= maxSlopeDegrees {
			if best == nil || row.SlopeMaxDegrees < best.SlopeMaxDegrees {
				best = row
			}
		}
	}
	if best == nil {
		best = fallback
	}
	if best != nil {
		costPerHour = best.CostPerHour
		if costPerHour == 0 {
			costPerHour = m.CostPerHour
		}
		return best.MetersPerHour, costPerHour
	}

	return m.ClearingRateMetersPerHour / factors, m.CostPerHour
}

func evaluateAircraft(
	a *domain.Aircraft,
	req EvaluateRequest,
	terrain domain.TerrainLevel,
	vegetation domain.VegetationType,
) domain.CalculationResult {
	res := newResult(&a.EquipmentSpec)

	// Aircraft use the strict membership check with no relaxation.
	res.Compatibility = strictCompatibility(&a.EquipmentSpec, terrain, vegetation)

	drops := int(math.Ceil(req.RouteDistanceMeters / a.DropLengthMeters))
	res.Drops = &drops
	res.TimeHours = float64(drops) * a.TurnaroundMinutes / 60
	if res.Compatibility != domain.CompatibilityIncompatible {
		res.Cost = res.TimeHours * a.CostPerHour
	}

	return res
}

func evaluateHandCrew(
	h *domain.HandCrew,
	req EvaluateRequest,
	terrain domain.TerrainLevel,
	vegetation domain.VegetationType,
	factors float64,
) domain.CalculationResult {
	res := newResult(&h.EquipmentSpec)

	// Hand crews use the strict membership check with no relaxation.
	res.Compatibility = strictCompatibility(&h.EquipmentSpec, terrain, vegetation)

	effectiveRate := float64(h.CrewSize) * h.ClearingRatePerPersonMetersPerHour / factors
	res.TimeHours = req.RouteDistanceMeters / effectiveRate
	if res.Compatibility != domain.CompatibilityIncompatible {
		res.Cost = res.TimeHours * h.CostPerHour
	}

	return res
}

func strictCompatibility(
	spec *domain.EquipmentSpec,
	terrain domain.TerrainLevel,
	vegetation domain.VegetationType,
) domain.CompatibilityLevel {
	if spec.MaxAllowedTerrainRank() >= domain.TerrainRank(terrain) && spec.AllowsVegetation(vegetation) {
		return domain.CompatibilityFull
	}
	return domain.CompatibilityIncompatible
}

func newResult(spec *domain.EquipmentSpec) domain.CalculationResult {
	return domain.CalculationResult{
		EquipmentID:   spec.ID,
		EquipmentName: spec.Name,
		EquipmentType: spec.Type,
	}
}

// rankResults orders results full < partial < incompatible, then by time
// ascending within a tier; times within timeTieHours of each other fall
// through to cost ascending.
func rankResults(results []domain.CalculationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ri := domain.CompatibilityRank(results[i].Compatibility)
		rj := domain.CompatibilityRank(results[j].Compatibility)
		if ri != rj {
			return ri < rj
		}
		if math.Abs(results[i].TimeHours-results[j].TimeHours) < timeTieHours {
			return results[i].Cost < results[j].Cost
		}
		return results[i].TimeHours < results[j].TimeHours
	})
}
