package ports

import (
	"context"

	"firebreak-route-service/internal/domain"
)

// Contract for retrieving the raw landcover class at a coordinate.
// Labels are provider-specific strings ("wood", "scrub", "grass", ...);
// classification into the vegetation taxonomy happens in the engine.
type LandcoverProvider interface {
	GetLandcoverClass(ctx context.Context, c domain.Coordinate) (string, error)
}

// Optional extension of LandcoverProvider that supports batched lookups.
type LandcoverBatchProvider interface {
	LandcoverProvider
	GetLandcoverClasses(ctx context.Context, coords []domain.Coordinate) ([]string, error)
}
