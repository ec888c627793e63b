package services

import (
	"context"
	"fmt"
	"math"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/platform/obs"
	"firebreak-route-service/internal/ports"
	"firebreak-route-service/internal/spatial"
)

type slopeStep struct {
	start     domain.Coordinate
	end       domain.Coordinate
	startElev float64
	endElev   float64
	distance  float64
	slope     float64
	category  domain.SlopeCategory
}

// AnalyzeSlope resamples the route at 100 m, looks up elevation for every
// sample, computes per-step slope and merges contiguous same-category steps
// into segments.
func AnalyzeSlope(
	ctx context.Context,
	points []domain.Coordinate,
	provider ports.ElevationProvider,
) (_ *domain.TrackAnalysis, err error) {
	defer obs.Time(ctx, "engine.AnalyzeSlope")(&err)

	if len(points) < 2 {
		return nil, fmt.Errorf("analyze slope: route needs at least 2 points, got %d: %w", len(points), ErrInvalidInput)
	}

	samples, err := Resample(points, SlopeSampleIntervalMeters)
	if err != nil {
		return nil, fmt.Errorf("analyze slope: %w", err)
	}

	elevations, err := fetchElevations(ctx, samples, provider)
	if err != nil {
		return nil, fmt.Errorf("analyze slope: fetch elevations: %w", err)
	}

	steps := make([]slopeStep, 0, len(samples))
	for i := 0; i+1 < len(samples); i++ {
		a, b := samples[i], samples[i+1]
		d := spatial.HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		if d <= 0 {
			// Coincident samples carry no distance and no slope; they are
			// skipped entirely rather than counted as flat.
			continue
		}

		rise := math.Abs(elevations[i+1] - elevations[i])
		slope := math.Atan(rise/d) * 180 / math.Pi
		steps = append(steps, slopeStep{
			start:     a,
			end:       b,
			startElev: elevations[i],
			endElev:   elevations[i+1],
			distance:  d,
			slope:     slope,
			category:  domain.CategorizeSlope(slope),
		})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("analyze slope: route has zero length: %w", ErrInvalidInput)
	}

	analysis := &domain.TrackAnalysis{
		Segments:          mergeSlopeSteps(steps),
		SlopeDistribution: make(map[domain.SlopeCategory]float64, len(domain.SlopeCategories)),
	}
	for _, c := range domain.SlopeCategories {
		analysis.SlopeDistribution[c] = 0
	}

	var weightedSlope float64
	for _, s := range steps {
		analysis.TotalDistanceMeters += s.distance
		weightedSlope += s.slope * s.distance
		if s.slope > analysis.MaxSlopeDegrees {
			analysis.MaxSlopeDegrees = s.slope
		}
	}
	analysis.AverageSlopeDegrees = weightedSlope / analysis.TotalDistanceMeters
	for _, seg := range analysis.Segments {
		analysis.SlopeDistribution[seg.Category] += seg.DistanceMeters
	}

	return analysis, nil
}

// mergeSlopeSteps collapses contiguous same-category steps into segments.
// Merged slope is the distance-weighted average; elevations are the first
// start and last end.
func mergeSlopeSteps(steps []slopeStep) []domain.SlopeSegment {
	segments := make([]domain.SlopeSegment, 0, len(steps))

	cur := domain.SlopeSegment{
		Start:          steps[0].start,
		End:            steps[0].end,
		Path:           []domain.Coordinate{steps[0].start, steps[0].end},
		SlopeDegrees:   steps[0].slope,
		Category:       steps[0].category,
		StartElevation: steps[0].startElev,
		EndElevation:   steps[0].endElev,
		DistanceMeters: steps[0].distance,
	}
	weighted := steps[0].slope * steps[0].distance

	for _, s := range steps[1:] {
		if s.category == cur.Category {
			cur.End = s.end
			cur.Path = append(cur.Path, s.end)
			cur.EndElevation = s.endElev
			cur.DistanceMeters += s.distance
			weighted += s.slope * s.distance
			cur.SlopeDegrees = weighted / cur.DistanceMeters
			continue
		}

		segments = append(segments, cur)
		cur = domain.SlopeSegment{
			Start:          s.start,
			End:            s.end,
			Path:           []domain.Coordinate{s.start, s.end},
			SlopeDegrees:   s.slope,
			Category:       s.category,
			StartElevation: s.startElev,
			EndElevation:   s.endElev,
			DistanceMeters: s.distance,
		}
		weighted = s.slope * s.distance
	}

	return append(segments, cur)
}
