package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"firebreak-route-service/internal/domain"
)

// SQL-backed implementation of the EquipmentRepository port. Works on both
// the local SQLite store and Postgres deployments.
type SqliteEquipmentRepository struct{ DB *sql.DB }

func NewSqliteEquipmentRepository(db *sql.DB) *SqliteEquipmentRepository {
	return &SqliteEquipmentRepository{DB: db}
}

// Return the whole equipment catalog.
func (s *SqliteEquipmentRepository) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite equipment repository: DB is nil")
	}

	query := `
	SELECT
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
	FROM equipment
	ORDER BY equipment_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list equipment: query equipment table: %w", err)
	}
	defer rows.Close()

	catalog := make([]domain.Equipment, 0, 16)
	for rows.Next() {
		var (
			seed            EquipmentSeed
			terrainJSON     string
			vegetationJSON  string
			clearingRate    sql.NullFloat64
			maxSlope        sql.NullFloat64
			performanceJSON sql.NullString
			dropLength      sql.NullFloat64
			turnaround      sql.NullFloat64
			crewSize        sql.NullInt64
			ratePerPerson   sql.NullFloat64
		)

		err := rows.Scan(
			&seed.ID,
			&seed.Name,
			&seed.Type,
			&seed.CostPerHour,
			&terrainJSON,
			&vegetationJSON,
			&clearingRate,
			&maxSlope,
			&performanceJSON,
			&dropLength,
			&turnaround,
			&crewSize,
			&ratePerPerson,
		)
		if err != nil {
			return nil, fmt.Errorf("list equipment: scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(terrainJSON), &seed.AllowedTerrain); err != nil {
			return nil, fmt.Errorf("list equipment: %q: parse allowed_terrain: %w", seed.ID, err)
		}
		if err := json.Unmarshal([]byte(vegetationJSON), &seed.AllowedVegetation); err != nil {
			return nil, fmt.Errorf("list equipment: %q: parse allowed_vegetation: %w", seed.ID, err)
		}
		if performanceJSON.Valid {
			if err := json.Unmarshal([]byte(performanceJSON.String), &seed.Performance); err != nil {
				return nil, fmt.Errorf("list equipment: %q: parse performance: %w", seed.ID, err)
			}
		}

		seed.ClearingRateMetersPerHour = clearingRate.Float64
		if maxSlope.Valid {
			v := maxSlope.Float64
			seed.MaxSlopeDegrees = &v
		}
		seed.DropLengthMeters = dropLength.Float64
		seed.TurnaroundMinutes = turnaround.Float64
		seed.CrewSize = int(crewSize.Int64)
		seed.ClearingRatePerPersonMetersPerHour = ratePerPerson.Float64

		eq, err := seed.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list equipment: %w", err)
		}
		catalog = append(catalog, eq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list equipment: row iteration: %w", err)
	}

	return catalog, nil
}
