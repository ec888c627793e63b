package services

import (
	"fmt"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/spatial"
)

// Sample spacings for the two independent segmentations.
const (
	SlopeSampleIntervalMeters      = 100.0
	VegetationSampleIntervalMeters = 200.0
)

// duplicateToleranceMeters is the spacing below which an output point is
// considered a duplicate of the previous one and dropped.
const duplicateToleranceMeters = 0.001

// Resample walks an ordered polyline and inserts linearly interpolated
// points so that consecutive samples sit intervalMeters apart, measured as
// cumulative distance from the start of the whole route rather than per
// original leg. Resetting per leg would let spacing drift whenever leg
// lengths are not interval multiples.
//
// Every distinct original vertex appears in the output, unmodified and in
// order. Inputs with fewer than two points are returned unchanged.
func Resample(points []domain.Coordinate, intervalMeters float64) ([]domain.Coordinate, error) {
	if intervalMeters <= 0 {
		return nil, fmt.Errorf("resample: interval %g m must be positive: %w", intervalMeters, ErrInvalidInput)
	}
	if len(points) < 2 {
		return points, nil
	}

	out := make([]domain.Coordinate, 0, len(points))
	out = append(out, points[0])

	walked := 0.0
	nextSample := intervalMeters

	for i := 1; i < len(points); i++ {
		prev := points[i-1]
		cur := points[i]
		leg := spatial.HaversineDistance(prev.Lat, prev.Lon, cur.Lat, cur.Lon)

		if leg > 0 {
			// Samples that would coincide with the upcoming vertex are
			// represented by the vertex itself, so stop short of it.
			for nextSample < walked+leg-duplicateToleranceMeters {
				t := (nextSample - walked) / leg
				lat, lon := spatial.Interpolate(prev.Lat, prev.Lon, cur.Lat, cur.Lon, t)
				out = appendDeduped(out, domain.Coordinate{Lat: lat, Lon: lon})
				nextSample += intervalMeters
			}
		}

		walked += leg
		out = appendDeduped(out, cur)
		for nextSample <= walked+duplicateToleranceMeters {
			nextSample += intervalMeters
		}
	}

	return out, nil
}

func appendDeduped(out []domain.Coordinate, c domain.Coordinate) []domain.Coordinate {
	last := out[len(out)-1]
	if spatial.HaversineDistance(last.Lat, last.Lon, c.Lat, c.Lon) < duplicateToleranceMeters {
		return out
	}
	return append(out, c)
}
