package domain

import (
	"errors"
	"fmt"
	"strings"
)

// EquipmentType discriminates the equipment variants.
type EquipmentType string

const (
	EquipmentMachinery EquipmentType = "machinery"
	EquipmentAircraft  EquipmentType = "aircraft"
	EquipmentHandCrew  EquipmentType = "hand_crew"
)

// EquipmentSpec holds the fields shared by every equipment variant.
type EquipmentSpec struct {
	ID                string
	Name              string
	Type              EquipmentType
	CostPerHour       float64
	AllowedTerrain    []TerrainLevel
	AllowedVegetation []VegetationType
}

// Equipment is implemented by Machinery, Aircraft and HandCrew.
type Equipment interface {
	Spec() *EquipmentSpec
}

func (s *EquipmentSpec) Spec() *EquipmentSpec { return s }

// AllowsVegetation reports whether v is in the allowed vegetation set.
func (s *EquipmentSpec) AllowsVegetation(v VegetationType) bool {
	for _, a := range s.AllowedVegetation {
		if a == v {
			return true
		}
	}
	return false
}

// MaxAllowedTerrainRank returns the highest rank among the allowed terrain
// levels, or -1 when none are set.
func (s *EquipmentSpec) MaxAllowedTerrainRank() int {
	max := -1
	for _, level := range s.AllowedTerrain {
		if r := TerrainRank(level); r > max {
			max = r
		}
	}
	return max
}

func (s *EquipmentSpec) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("equipment id must be non-empty")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("equipment %q: name must be non-empty", s.ID)
	}
	if s.CostPerHour < 0 {
		return fmt.Errorf("equipment %q: cost per hour must not be negative", s.ID)
	}
	for _, level := range s.AllowedTerrain {
		if TerrainRank(level) < 0 {
			return fmt.Errorf("equipment %q: unknown terrain level %q", s.ID, level)
		}
	}
	for _, v := range s.AllowedVegetation {
		if !ValidVegetationType(v) {
			return fmt.Errorf("equipment %q: unknown vegetation type %q", s.ID, v)
		}
	}
	return nil
}

// PerformanceRow is a measured machinery clearing rate for a specific
// slope ceiling and vegetation type. When present, rows override the
// factor-derived nominal rate.
type PerformanceRow struct {
	SlopeMaxDegrees float64
	Vegetation      VegetationType
	MetersPerHour   float64
	CostPerHour     float64 // 0 means "use the machine's base cost per hour"
}

// Machinery is heavy ground equipment (dozers, graders, masticators).
type Machinery struct {
	EquipmentSpec
	ClearingRateMetersPerHour float64
	MaxSlopeDegrees           *float64 // hard cutoff when set
	Performance               []PerformanceRow
}

// Validate checks the machinery record for values the engine cannot evaluate.
func (m *Machinery) Validate() error {
	if err := m.validate(); err != nil {
		return err
	}
	if m.ClearingRateMetersPerHour <= 0 {
		return fmt.Errorf("machinery %q: clearing rate must be positive", m.ID)
	}
	for i, row := range m.Performance {
		if row.MetersPerHour <= 0 {
			return fmt.Errorf("machinery %q: performance row %d: meters per hour must be positive", m.ID, i)
		}
		if !ValidVegetationType(row.Vegetation) {
			return fmt.Errorf("machinery %q: performance row %d: unknown vegetation type %q", m.ID, i, row.Vegetation)
		}
	}
	return nil
}

// Aircraft drops retardant in fixed-length passes.
type Aircraft struct {
	EquipmentSpec
	DropLengthMeters  float64
	TurnaroundMinutes float64
}

// Validate checks the aircraft record for values the engine cannot evaluate.
func (a *Aircraft) Validate() error {
	if err := a.validate(); err != nil {
		return err
	}
	if a.DropLengthMeters <= 0 {
		return fmt.Errorf("aircraft %q: drop length must be positive", a.ID)
	}
	if a.TurnaroundMinutes <= 0 {
		return fmt.Errorf("aircraft %q: turnaround minutes must be positive", a.ID)
	}
	return nil
}

// HandCrew clears by hand at a per-person rate.
type HandCrew struct {
	EquipmentSpec
	CrewSize                           int
	ClearingRatePerPersonMetersPerHour float64
}

// Validate checks the hand-crew record for values the engine cannot evaluate.
func (h *HandCrew) Validate() error {
	if err := h.validate(); err != nil {
		return err
	}
	if h.CrewSize <= 0 {
		return fmt.Errorf("hand crew %q: crew size must be positive", h.ID)
	}
	if h.ClearingRatePerPersonMetersPerHour <= 0 {
		return fmt.Errorf("hand crew %q: per-person clearing rate must be positive", h.ID)
	}
	return nil
}
