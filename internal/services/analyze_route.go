package services

import (
	"context"
	"fmt"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/platform/obs"
	"firebreak-route-service/internal/ports"
)

// AnalyzeRouteRequest is one full route analysis invocation.
type AnalyzeRouteRequest struct {
	Points             []domain.Coordinate
	VegetationOverride domain.VegetationType // empty means "use predominant"
	Compatibility      CompatibilityConfig   // zero value means defaults
}

// RouteReport bundles everything the presentation layer consumes: the two
// segmentations, their joint distribution and the ranked equipment results.
// It is plain immutable data with no provider handles embedded.
type RouteReport struct {
	Track      *domain.TrackAnalysis
	Vegetation *domain.VegetationAnalysis
	Overlap    domain.OverlapMatrix
	Results    []domain.CalculationResult
}

// AnalyzeRoute runs the full pipeline: slope and vegetation segmentation
// (concurrently; they sample the route independently), the overlap join, and
// equipment evaluation against the supplied catalog. The function is pure
// over its inputs and provider responses; nothing is retained between
// invocations, and a failed step fails the whole analysis rather than
// surfacing partial results.
func AnalyzeRoute(
	ctx context.Context,
	req AnalyzeRouteRequest,
	elevation ports.ElevationProvider,
	landcover ports.LandcoverProvider,
	repo ports.EquipmentRepository,
) (_ *RouteReport, err error) {
	defer obs.Time(ctx, "engine.AnalyzeRoute")(&err)

	if len(req.Points) < 2 {
		return nil, fmt.Errorf("analyze route: route needs at least 2 points, got %d: %w", len(req.Points), ErrInvalidInput)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type vegetationOutcome struct {
		analysis *domain.VegetationAnalysis
		err      error
	}
	vegCh := make(chan vegetationOutcome, 1)
	go func() {
		analysis, err := AnalyzeVegetation(ctx, req.Points, landcover)
		vegCh <- vegetationOutcome{analysis, err}
	}()

	track, err := AnalyzeSlope(ctx, req.Points, elevation)
	if err != nil {
		cancel()
		<-vegCh
		return nil, fmt.Errorf("analyze route: %w", err)
	}

	veg := <-vegCh
	if veg.err != nil {
		return nil, fmt.Errorf("analyze route: %w", veg.err)
	}

	overlap, err := JoinOverlap(track, veg.analysis)
	if err != nil {
		return nil, fmt.Errorf("analyze route: %w", err)
	}

	catalog, err := repo.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyze route: list equipment: %w", err)
	}

	results, err := EvaluateEquipment(EvaluateRequest{
		RouteDistanceMeters: track.TotalDistanceMeters,
		Track:               track,
		Vegetation:          veg.analysis,
		VegetationOverride:  req.VegetationOverride,
		Equipment:           catalog,
		Config:              req.Compatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze route: %w", err)
	}

	return &RouteReport{
		Track:      track,
		Vegetation: veg.analysis,
		Overlap:    overlap,
		Results:    results,
	}, nil
}
