package ports

import (
	"context"

	"firebreak-route-service/internal/domain"
)

// Contract for retrieving ground elevation at a coordinate.
type ElevationProvider interface {
	// Return elevation in meters above sea level.
	GetElevation(ctx context.Context, c domain.Coordinate) (float64, error)
}

// Optional extension of ElevationProvider that supports batched lookups.
// The sampler prefers this path when implemented; results are returned in
// input order.
type ElevationBatchProvider interface {
	ElevationProvider
	GetElevations(ctx context.Context, coords []domain.Coordinate) ([]float64, error)
}
