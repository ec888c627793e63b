package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"firebreak-route-service/internal/domain"
)

// Initialize the database schema. The DDL avoids driver-specific syntax so
// it runs unchanged on both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEquipmentQuery := `
	CREATE TABLE IF NOT EXISTS equipment (
		equipment_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		cost_per_hour REAL NOT NULL DEFAULT 0,
		allowed_terrain TEXT NOT NULL,
		allowed_vegetation TEXT NOT NULL,
		clearing_rate_m_per_h REAL,
		max_slope_degrees REAL,
		performance TEXT,
		drop_length_m REAL,
		turnaround_minutes REAL,
		crew_size INTEGER,
		rate_per_person_m_per_h REAL
	);
	`

	createTileCacheQuery := `
	CREATE TABLE IF NOT EXISTS tile_cache (
		tile_key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		fetched_at TIMESTAMP
	);
	`

	statements := []string{
		createEquipmentQuery,
		createTileCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// PerformanceSeed is one measured machinery rate in the seed file.
type PerformanceSeed struct {
	SlopeMaxDegrees float64 `json:"slope_max_degrees"`
	Vegetation      string  `json:"vegetation"`
	MetersPerHour   float64 `json:"meters_per_hour"`
	CostPerHour     float64 `json:"cost_per_hour,omitempty"`
}

// EquipmentSeed is one catalog entry in the seed file. Variant-specific
// fields are optional in JSON and validated against the declared type.
type EquipmentSeed struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	CostPerHour       float64  `json:"cost_per_hour"`
	AllowedTerrain    []string `json:"allowed_terrain"`
	AllowedVegetation []string `json:"allowed_vegetation"`

	ClearingRateMetersPerHour float64           `json:"clearing_rate_meters_per_hour,omitempty"`
	MaxSlopeDegrees           *float64          `json:"max_slope_degrees,omitempty"`
	Performance               []PerformanceSeed `json:"performance,omitempty"`

	DropLengthMeters  float64 `json:"drop_length_meters,omitempty"`
	TurnaroundMinutes float64 `json:"turnaround_minutes,omitempty"`

	CrewSize                           int     `json:"crew_size,omitempty"`
	ClearingRatePerPersonMetersPerHour float64 `json:"clearing_rate_per_person_meters_per_hour,omitempty"`
}

// Populate the equipment catalog from a JSON seed file. Every entry is
// validated as a domain object before anything is written.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed equipment: read %q: %w", jsonPath, err)
	}

	var seeds []EquipmentSeed
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return fmt.Errorf("seed equipment: parse json: %w", err)
	}

	for i, seed := range seeds {
		if _, err := seed.toDomain(); err != nil {
			return fmt.Errorf("seed equipment: entry %d: %w", i+1, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed equipment: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO equipment (
		equipment_id,
		name,
		type,
		cost_per_hour,
		allowed_terrain,
		allowed_vegetation,
		clearing_rate_m_per_h,
		max_slope_degrees,
		performance,
		drop_length_m,
		turnaround_minutes,
		crew_size,
		rate_per_person_m_per_h
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed equipment: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, seed := range seeds {
		terrainJSON, err := json.Marshal(seed.AllowedTerrain)
		if err != nil {
			return fmt.Errorf("seed equipment: marshal terrain for %q: %w", seed.ID, err)
		}
		vegetationJSON, err := json.Marshal(seed.AllowedVegetation)
		if err != nil {
			return fmt.Errorf("seed equipment: marshal vegetation for %q: %w", seed.ID, err)
		}

		var performanceJSON string
		if len(seed.Performance) > 0 {
			data, err := json.Marshal(seed.Performance)
			if err != nil {
				return fmt.Errorf("seed equipment: marshal performance for %q: %w", seed.ID, err)
			}
			performanceJSON = string(data)
		}

		_, err = stmt.Exec(
			seed.ID,
			seed.Name,
			seed.Type,
			seed.CostPerHour,
			string(terrainJSON),
			string(vegetationJSON),
			nullFloat(seed.ClearingRateMetersPerHour),
			seed.MaxSlopeDegrees,
			nullString(performanceJSON),
			nullFloat(seed.DropLengthMeters),
			nullFloat(seed.TurnaroundMinutes),
			nullInt(seed.CrewSize),
			nullFloat(seed.ClearingRatePerPersonMetersPerHour),
		)
		if err != nil {
			return fmt.Errorf("seed equipment: insert equipment_id=%q: %w", seed.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed equipment: commit tx: %w", err)
	}

	return nil
}

// toDomain builds and validates the domain object the seed describes.
func (s EquipmentSeed) toDomain() (domain.Equipment, error) {
	spec := domain.EquipmentSpec{
		ID:          strings.TrimSpace(s.ID),
		Name:        strings.TrimSpace(s.Name),
		Type:        domain.EquipmentType(s.Type),
		CostPerHour: s.CostPerHour,
	}
	for _, level := range s.AllowedTerrain {
		spec.AllowedTerrain = append(spec.AllowedTerrain, domain.TerrainLevel(level))
	}
	for _, v := range s.AllowedVegetation {
		spec.AllowedVegetation = append(spec.AllowedVegetation, domain.VegetationType(v))
	}

	switch spec.Type {
	case domain.EquipmentMachinery:
		m := &domain.Machinery{
			EquipmentSpec:             spec,
			ClearingRateMetersPerHour: s.ClearingRateMetersPerHour,
			MaxSlopeDegrees:           s.MaxSlopeDegrees,
		}
		for _, row := range s.Performance {
			m.Performance = append(m.Performance, domain.PerformanceRow{
				SlopeMaxDegrees: row.SlopeMaxDegrees,
				Vegetation:      domain.VegetationType(row.Vegetation),
				MetersPerHour:   row.MetersPerHour,
				CostPerHour:     row.CostPerHour,
			})
		}
		return m, m.Validate()
	case domain.EquipmentAircraft:
		a := &domain.Aircraft{
			EquipmentSpec:     spec,
			DropLengthMeters:  s.DropLengthMeters,
			TurnaroundMinutes: s.TurnaroundMinutes,
		}
		return a, a.Validate()
	case domain.EquipmentHandCrew:
		h := &domain.HandCrew{
			EquipmentSpec:                      spec,
			CrewSize:                           s.CrewSize,
			ClearingRatePerPersonMetersPerHour: s.ClearingRatePerPersonMetersPerHour,
		}
		return h, h.Validate()
	default:
		return nil, fmt.Errorf("equipment %q: unknown type %q", s.ID, s.Type)
	}
}

func nullFloat(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
