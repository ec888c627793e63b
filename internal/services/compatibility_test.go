package services

import (
	"errors"
	"math"
	"testing"

	"firebreak-route-service/internal/domain"
)

func allTerrain() []domain.TerrainLevel {
	return []domain.TerrainLevel{
		domain.TerrainEasy, domain.TerrainModerate, domain.TerrainDifficult, domain.TerrainExtreme,
	}
}

func allVegetation() []domain.VegetationType {
	return append([]domain.VegetationType(nil), domain.VegetationTypes...)
}

// trackWith builds a track analysis directly from a slope distribution.
func trackWith(maxSlope float64, distribution map[domain.SlopeCategory]float64) *domain.TrackAnalysis {
	track := &domain.TrackAnalysis{
		MaxSlopeDegrees:   maxSlope,
		SlopeDistribution: distribution,
	}
	for _, meters := range distribution {
		track.TotalDistanceMeters += meters
	}
	return track
}

func TestEvaluateMachineryFlatGrassland(t *testing.T) {
	track := trackWith(5, map[domain.SlopeCategory]float64{domain.SlopeFlat: 1000})
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Dozer", Type: domain.EquipmentMachinery,
			CostPerHour:       300,
			AllowedTerrain:    []domain.TerrainLevel{domain.TerrainEasy},
			AllowedVegetation: []domain.VegetationType{domain.VegetationGrassland},
		},
		ClearingRateMetersPerHour: 1200,
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := results[0]
	if res.Compatibility != domain.CompatibilityFull {
		t.Fatalf("compatibility = %s, want full", res.Compatibility)
	}
	// Flat terrain and grassland leave the nominal rate untouched.
	want := 1000.0 / 1200.0
	if math.Abs(res.TimeHours-want) > 1e-9 {
		t.Errorf("time = %.6f h, want %.6f h", res.TimeHours, want)
	}
	if math.Abs(res.Cost-want*300) > 1e-9 {
		t.Errorf("cost = %.4f, want %.4f", res.Cost, want*300)
	}
}

func TestEvaluateMachineryPartialTolerance(t *testing.T) {
	// 15% of the route outranks the machine's terrain rating: exactly at
	// the tolerance, so the verdict is partial with a 1.3x time penalty.
	track := trackWith(15, map[domain.SlopeCategory]float64{
		domain.SlopeFlat:   850,
		domain.SlopeMedium: 150,
	})
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Light Dozer", Type: domain.EquipmentMachinery,
			CostPerHour:       200,
			AllowedTerrain:    []domain.TerrainLevel{domain.TerrainEasy},
			AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 1000,
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := results[0]
	if res.Compatibility != domain.CompatibilityPartial {
		t.Fatalf("compatibility = %s, want partial", res.Compatibility)
	}
	if res.OverLimitFraction == nil || math.Abs(*res.OverLimitFraction-0.15) > 1e-9 {
		t.Fatalf("over-limit fraction = %v, want 0.15", res.OverLimitFraction)
	}

	// Max slope 15 degrees implies moderate terrain: rate 1000/1.3, then
	// the 1 + 2*0.15 penalty on time.
	rate := 1000.0 / 1.3
	want := 1000.0 / rate * 1.3
	if math.Abs(res.TimeHours-want) > 1e-9 {
		t.Errorf("time = %.6f h, want %.6f h", res.TimeHours, want)
	}
}

func TestEvaluateMachineryOverTolerance(t *testing.T) {
	track := trackWith(15, map[domain.SlopeCategory]float64{
		domain.SlopeFlat:   8499,
		domain.SlopeMedium: 1501,
	})
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Light Dozer", Type: domain.EquipmentMachinery,
			CostPerHour:       200,
			AllowedTerrain:    []domain.TerrainLevel{domain.TerrainEasy},
			AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 1000,
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 10000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := results[0]
	if res.Compatibility != domain.CompatibilityIncompatible {
		t.Fatalf("compatibility = %s, want incompatible (0.1501 > 0.15)", res.Compatibility)
	}
	if res.Cost != 0 {
		t.Errorf("cost = %.4f, want 0 for incompatible equipment", res.Cost)
	}
	if res.TimeHours <= 0 {
		t.Errorf("time = %.4f, want informative positive estimate", res.TimeHours)
	}
}

func TestEvaluateMachinerySlopeCeiling(t *testing.T) {
	// The hard slope ceiling overrides the tolerance rule even when the
	// terrain membership check passes.
	ceiling := 25.0
	track := trackWith(26, map[domain.SlopeCategory]float64{domain.SlopeSteep: 1000})
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Masticator", Type: domain.EquipmentMachinery,
			CostPerHour:       250,
			AllowedTerrain:    allTerrain(),
			AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 500,
		MaxSlopeDegrees:           &ceiling,
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if results[0].Compatibility != domain.CompatibilityIncompatible {
		t.Fatalf("compatibility = %s, want incompatible above slope ceiling", results[0].Compatibility)
	}
}

func TestEvaluateMachineryDisallowedVegetation(t *testing.T) {
	track := trackWith(5, map[domain.SlopeCategory]float64{domain.SlopeFlat: 1000})
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Grader", Type: domain.EquipmentMachinery,
			CostPerHour:       150,
			AllowedTerrain:    allTerrain(),
			AllowedVegetation: []domain.VegetationType{domain.VegetationGrassland},
		},
		ClearingRateMetersPerHour: 2000,
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationHeavyforest,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := results[0]
	if res.Compatibility != domain.CompatibilityIncompatible {
		t.Fatalf("compatibility = %s, want incompatible", res.Compatibility)
	}
	if res.OverLimitFraction != nil {
		t.Errorf("over-limit fraction set for a vegetation failure")
	}
}

func TestEvaluateMachineryPerformanceRows(t *testing.T) {
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "D8", Type: domain.EquipmentMachinery,
			CostPerHour:       420,
			AllowedTerrain:    allTerrain(),
			AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 900,
		Performance: []domain.PerformanceRow{
			{SlopeMaxDegrees: 10, Vegetation: domain.VegetationGrassland, MetersPerHour: 1400},
			{SlopeMaxDegrees: 20, Vegetation: domain.VegetationGrassland, MetersPerHour: 1000},
			{SlopeMaxDegrees: 30, Vegetation: domain.VegetationGrassland, MetersPerHour: 450, CostPerHour: 510},
		},
	}

	// Max slope 15: the tightest row covering it is the 20 degree ceiling.
	track := trackWith(15, map[domain.SlopeCategory]float64{domain.SlopeMedium: 1000})
	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 1000.0 / 1000.0; math.Abs(results[0].TimeHours-want) > 1e-9 {
		t.Errorf("time = %.6f h, want %.6f h from the 20-degree row", results[0].TimeHours, want)
	}

	// Max slope 35: no row covers it, so the highest-ceiling row is used,
	// along with that row's own hourly cost.
	track = trackWith(35, map[domain.SlopeCategory]float64{domain.SlopeVerySteep: 1000})
	results, err = EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantTime := 1000.0 / 450.0
	if math.Abs(results[0].TimeHours-wantTime) > 1e-9 {
		t.Errorf("time = %.6f h, want %.6f h from the fallback row", results[0].TimeHours, wantTime)
	}
	if math.Abs(results[0].Cost-wantTime*510) > 1e-9 {
		t.Errorf("cost = %.4f, want %.4f from the row's own rate", results[0].Cost, wantTime*510)
	}
}

func TestEvaluateAircraftDrops(t *testing.T) {
	aircraft := &domain.Aircraft{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "a1", Name: "Tanker", Type: domain.EquipmentAircraft,
			CostPerHour:       3200,
			AllowedTerrain:    allTerrain(),
			AllowedVegetation: allVegetation(),
		},
		DropLengthMeters:  100,
		TurnaroundMinutes: 12,
	}
	track := trackWith(5, map[domain.SlopeCategory]float64{domain.SlopeFlat: 1000})

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{aircraft},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := results[0]
	if res.Drops == nil || *res.Drops != 10 {
		t.Fatalf("drops = %v, want 10", res.Drops)
	}
	if math.Abs(res.TimeHours-2.0) > 1e-9 {
		t.Errorf("time = %.6f h, want 2.0", res.TimeHours)
	}

	// A partial final pass still needs a whole drop.
	results, err = EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 950,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{aircraft},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *results[0].Drops != 10 {
		t.Errorf("drops for 950 m = %d, want 10", *results[0].Drops)
	}
}

func TestEvaluateHandCrew(t *testing.T) {
	crew := &domain.HandCrew{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "h1", Name: "Crew", Type: domain.EquipmentHandCrew,
			CostPerHour:       300,
			AllowedTerrain:    allTerrain(),
			AllowedVegetation: allVegetation(),
		},
		CrewSize:                           6,
		ClearingRatePerPersonMetersPerHour: 50,
	}
	// Moderate terrain (max slope 15) and light shrub: 300 m/h crew rate
	// divided by 1.3 * 1.1.
	track := trackWith(15, map[domain.SlopeCategory]float64{domain.SlopeMedium: 1000})

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationLightshrub,
		Equipment:           []domain.Equipment{crew},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := results[0]
	if res.Compatibility != domain.CompatibilityFull {
		t.Fatalf("compatibility = %s, want full", res.Compatibility)
	}
	want := 1000.0 / (6 * 50.0 / (1.3 * 1.1))
	if math.Abs(res.TimeHours-want) > 1e-9 {
		t.Errorf("time = %.6f h, want %.6f h", res.TimeHours, want)
	}
}

func TestEvaluateRanking(t *testing.T) {
	track := trackWith(15, map[domain.SlopeCategory]float64{
		domain.SlopeFlat:   850,
		domain.SlopeMedium: 150,
	})

	fullSlow := &domain.HandCrew{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "h1", Name: "Crew", Type: domain.EquipmentHandCrew,
			CostPerHour: 300, AllowedTerrain: allTerrain(), AllowedVegetation: allVegetation(),
		},
		CrewSize: 4, ClearingRatePerPersonMetersPerHour: 20,
	}
	fullFast := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Big Dozer", Type: domain.EquipmentMachinery,
			CostPerHour: 400, AllowedTerrain: allTerrain(), AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 2000,
	}
	partial := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m2", Name: "Light Dozer", Type: domain.EquipmentMachinery,
			CostPerHour: 200, AllowedTerrain: []domain.TerrainLevel{domain.TerrainEasy},
			AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 3000,
	}
	incompatible := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m3", Name: "Grader", Type: domain.EquipmentMachinery,
			CostPerHour: 150, AllowedTerrain: allTerrain(),
			AllowedVegetation: []domain.VegetationType{domain.VegetationHeavyforest},
		},
		ClearingRateMetersPerHour: 2500,
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{incompatible, partial, fullSlow, fullFast},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"m1", "h1", "m2", "m3"}
	for i, want := range wantOrder {
		if results[i].EquipmentID != want {
			t.Fatalf("rank %d = %s, want %s (full order: %v)", i, results[i].EquipmentID, want, results)
		}
	}
}

func TestEvaluateNearTieBrokenByCost(t *testing.T) {
	track := trackWith(5, map[domain.SlopeCategory]float64{domain.SlopeFlat: 1000})

	expensive := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "A", Type: domain.EquipmentMachinery,
			CostPerHour: 500, AllowedTerrain: allTerrain(), AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 1050, // ~0.952 h
	}
	cheap := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m2", Name: "B", Type: domain.EquipmentMachinery,
			CostPerHour: 200, AllowedTerrain: allTerrain(), AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 1000, // 1.0 h, within the 0.1 h tie window
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{expensive, cheap},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if results[0].EquipmentID != "m2" {
		t.Fatalf("rank 0 = %s, want m2 (cheaper within the tie window)", results[0].EquipmentID)
	}
}

func TestEvaluateCustomTolerance(t *testing.T) {
	track := trackWith(15, map[domain.SlopeCategory]float64{
		domain.SlopeFlat:   750,
		domain.SlopeMedium: 250,
	})
	machine := &domain.Machinery{
		EquipmentSpec: domain.EquipmentSpec{
			ID: "m1", Name: "Dozer", Type: domain.EquipmentMachinery,
			CostPerHour: 300, AllowedTerrain: []domain.TerrainLevel{domain.TerrainEasy},
			AllowedVegetation: allVegetation(),
		},
		ClearingRateMetersPerHour: 1000,
	}

	// 25% over-limit is incompatible under the defaults but partial under
	// a widened deployment override.
	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{machine},
		Config:              CompatibilityConfig{PartialTolerance: 0.3, PenaltyScale: 1.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Compatibility != domain.CompatibilityPartial {
		t.Fatalf("compatibility = %s, want partial at widened tolerance", results[0].Compatibility)
	}
}

func TestEvaluateRequiresVegetation(t *testing.T) {
	track := trackWith(5, map[domain.SlopeCategory]float64{domain.SlopeFlat: 1000})

	_, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestEvaluateUnknownEquipmentType(t *testing.T) {
	track := trackWith(5, map[domain.SlopeCategory]float64{domain.SlopeFlat: 1000})

	// A bare spec is not one of the evaluable variants; the engine must
	// fail the whole evaluation rather than invent a verdict.
	unknown := &domain.EquipmentSpec{ID: "x1", Name: "Mystery", Type: "teleporter"}

	_, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: 1000,
		Track:               track,
		VegetationOverride:  domain.VegetationGrassland,
		Equipment:           []domain.Equipment{unknown},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
