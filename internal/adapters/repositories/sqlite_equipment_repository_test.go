package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"firebreak-route-service/internal/domain"
)

const testSeed = `[
  {
    "id": "dozer-1",
    "name": "Test Dozer",
    "type": "machinery",
    "cost_per_hour": 300,
    "allowed_terrain": ["easy", "moderate"],
    "allowed_vegetation": ["grassland", "lightshrub"],
    "clearing_rate_meters_per_hour": 1200,
    "max_slope_degrees": 25,
    "performance": [
      { "slope_max_degrees": 10, "vegetation": "grassland", "meters_per_hour": 1400 },
      { "slope_max_degrees": 20, "vegetation": "grassland", "meters_per_hour": 1000, "cost_per_hour": 350 }
    ]
  },
  {
    "id": "tanker-1",
    "name": "Test Tanker",
    "type": "aircraft",
    "cost_per_hour": 3200,
    "allowed_terrain": ["easy", "moderate", "difficult", "extreme"],
    "allowed_vegetation": ["grassland", "lightshrub", "mediumscrub", "heavyforest"],
    "drop_length_meters": 100,
    "turnaround_minutes": 12
  },
  {
    "id": "crew-1",
    "name": "Test Crew",
    "type": "hand_crew",
    "cost_per_hour": 500,
    "allowed_terrain": ["easy", "moderate", "difficult", "extreme"],
    "allowed_vegetation": ["grassland", "lightshrub", "mediumscrub", "heavyforest"],
    "crew_size": 6,
    "clearing_rate_per_person_meters_per_hour": 50
  }
]`

func seededDB(t *testing.T, seedJSON string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seedPath := filepath.Join(t.TempDir(), "equipment.json")
	if err := os.WriteFile(seedPath, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func TestListEquipmentRoundTrip(t *testing.T) {
	repo := NewSqliteEquipmentRepository(seededDB(t, testSeed))

	catalog, err := repo.ListEquipment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 3 {
		t.Fatalf("expected 3 items, got %d", len(catalog))
	}

	// Rows come back ordered by equipment_id: crew-1, dozer-1, tanker-1.
	crew, ok := catalog[0].(*domain.HandCrew)
	if !ok {
		t.Fatalf("item 0 is %T, want *domain.HandCrew", catalog[0])
	}
	if crew.CrewSize != 6 || crew.ClearingRatePerPersonMetersPerHour != 50 {
		t.Errorf("crew = %+v, want size 6 rate 50", crew)
	}

	dozer, ok := catalog[1].(*domain.Machinery)
	if !ok {
		t.Fatalf("item 1 is %T, want *domain.Machinery", catalog[1])
	}
	if dozer.ClearingRateMetersPerHour != 1200 {
		t.Errorf("clearing rate = %g, want 1200", dozer.ClearingRateMetersPerHour)
	}
	if dozer.MaxSlopeDegrees == nil || *dozer.MaxSlopeDegrees != 25 {
		t.Errorf("max slope = %v, want 25", dozer.MaxSlopeDegrees)
	}
	if len(dozer.Performance) != 2 {
		t.Fatalf("expected 2 performance rows, got %d", len(dozer.Performance))
	}
	if dozer.Performance[1].CostPerHour != 350 {
		t.Errorf("row cost = %g, want 350", dozer.Performance[1].CostPerHour)
	}
	if len(dozer.AllowedTerrain) != 2 || dozer.AllowedTerrain[1] != domain.TerrainModerate {
		t.Errorf("allowed terrain = %v", dozer.AllowedTerrain)
	}

	tanker, ok := catalog[2].(*domain.Aircraft)
	if !ok {
		t.Fatalf("item 2 is %T, want *domain.Aircraft", catalog[2])
	}
	if tanker.DropLengthMeters != 100 || tanker.TurnaroundMinutes != 12 {
		t.Errorf("tanker = %+v, want drop 100 turnaround 12", tanker)
	}
}

func TestSeedFromJSONReplacesExisting(t *testing.T) {
	db := seededDB(t, testSeed)

	updated := `[
	  {
	    "id": "dozer-1",
	    "name": "Renamed Dozer",
	    "type": "machinery",
	    "cost_per_hour": 999,
	    "allowed_terrain": ["easy"],
	    "allowed_vegetation": ["grassland"],
	    "clearing_rate_meters_per_hour": 800
	  }
	]`
	seedPath := filepath.Join(t.TempDir(), "update.json")
	if err := os.WriteFile(seedPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	catalog, err := NewSqliteEquipmentRepository(db).ListEquipment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 3 {
		t.Fatalf("expected 3 items after reseed, got %d", len(catalog))
	}
	if got := catalog[1].Spec().Name; got != "Renamed Dozer" {
		t.Errorf("name = %q, want Renamed Dozer", got)
	}
}

func TestSeedFromJSONRejectsInvalidEntry(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	// Machinery with a non-positive clearing rate must be rejected before
	// anything is written.
	bad := `[
	  {
	    "id": "broken-1",
	    "name": "Broken",
	    "type": "machinery",
	    "cost_per_hour": 100,
	    "allowed_terrain": ["easy"],
	    "allowed_vegetation": ["grassland"]
	  }
	]`
	seedPath := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(seedPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err == nil {
		t.Fatal("expected validation error")
	}

	catalog, err := NewSqliteEquipmentRepository(db).ListEquipment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 0 {
		t.Fatalf("expected empty catalog, got %d items", len(catalog))
	}
}

func TestSeedFromJSONUnknownType(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	bad := `[
	  {
	    "id": "x-1",
	    "name": "Mystery",
	    "type": "teleporter",
	    "cost_per_hour": 100,
	    "allowed_terrain": ["easy"],
	    "allowed_vegetation": ["grassland"]
	  }
	]`
	seedPath := filepath.Join(t.TempDir(), "unknown.json")
	if err := os.WriteFile(seedPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err == nil {
		t.Fatal("expected unknown-type error")
	}
}
