package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/ports"
)

// defaultFetchWindow bounds concurrent provider lookups per analysis.
// Provider calls are I/O-bound tile fetches; a small window removes the
// serial-latency bottleneck without hammering the tile service.
const defaultFetchWindow = 8

type indexedSample[T any] struct {
	index int
	value T
	err   error
}

// gatherOrdered fetches one value per point through fn using a bounded
// concurrent-request window and returns results in point order. The
// segmentation pass that follows is strictly sequential and cannot tolerate
// out-of-order samples, so responses are reassembled by index before the
// caller sees them.
func gatherOrdered[T any](
	ctx context.Context,
	points []domain.Coordinate,
	fn func(ctx context.Context, c domain.Coordinate) (T, error),
) ([]T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, defaultFetchWindow)
	results := make(chan indexedSample[T], len(points))
	var wg sync.WaitGroup

	for i, p := range points {
		wg.Add(1)
		go func(i int, p domain.Coordinate) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				results <- indexedSample[T]{index: i, err: err}
				return
			}

			v, err := fn(ctx, p)
			if err != nil {
				results <- indexedSample[T]{index: i, err: err}
				cancel()
				return
			}
			results <- indexedSample[T]{index: i, value: v}
		}(i, p)
	}

	wg.Wait()
	close(results)

	out := make([]T, len(points))
	var firstErr error
	for r := range results {
		if r.err != nil {
			// Prefer the provider failure over the context errors the
			// cancel fan-out produces in the remaining goroutines.
			if firstErr == nil || (isContextErr(firstErr) && !isContextErr(r.err)) {
				firstErr = r.err
			}
			continue
		}
		out[r.index] = r.value
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// fetchElevations returns one elevation per point, in point order. Batched
// providers are preferred to reduce external calls.
func fetchElevations(
	ctx context.Context,
	points []domain.Coordinate,
	provider ports.ElevationProvider,
) ([]float64, error) {
	if bp, ok := provider.(ports.ElevationBatchProvider); ok {
		elevations, err := bp.GetElevations(ctx, points)
		if err != nil {
			return nil, err
		}
		if len(elevations) != len(points) {
			return nil, fmt.Errorf("elevation batch returned %d values for %d points", len(elevations), len(points))
		}
		return elevations, nil
	}
	return gatherOrdered(ctx, points, provider.GetElevation)
}

// fetchLandcoverClasses returns one raw landcover label per point, in point
// order. Batched providers are preferred to reduce external calls.
func fetchLandcoverClasses(
	ctx context.Context,
	points []domain.Coordinate,
	provider ports.LandcoverProvider,
) ([]string, error) {
	if bp, ok := provider.(ports.LandcoverBatchProvider); ok {
		labels, err := bp.GetLandcoverClasses(ctx, points)
		if err != nil {
			return nil, err
		}
		if len(labels) != len(points) {
			return nil, fmt.Errorf("landcover batch returned %d values for %d points", len(labels), len(points))
		}
		return labels, nil
	}
	return gatherOrdered(ctx, points, provider.GetLandcoverClass)
}
