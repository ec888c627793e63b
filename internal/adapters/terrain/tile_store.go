package terrain

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"sync"
)

// TileCache is a persistent byte cache for fetched tiles. Implementations
// live in the cache adapter package; a nil cache disables persistence.
// Cache failures are logged and treated as misses, never surfaced as
// analysis failures.
type TileCache interface {
	// GetTile returns the cached tile bytes and whether the key was present.
	GetTile(ctx context.Context, key string) ([]byte, bool, error)
	// PutTile stores tile bytes under the key.
	PutTile(ctx context.Context, key string, data []byte) error
}

// maxDecodedTiles caps the in-memory decoded-tile map. A route analysis
// touches a handful of tiles; the cap only matters for long-lived servers.
const maxDecodedTiles = 64

// tileStore layers an in-memory decoded-tile map and an optional persistent
// byte cache over the HTTP tile client. Shared by both raster providers.
type tileStore struct {
	client *tileClient
	cache  TileCache

	mu      sync.Mutex
	decoded map[string]image.Image
}

func newTileStore(client *tileClient, cache TileCache) *tileStore {
	return &tileStore{
		client:  client,
		cache:   cache,
		decoded: make(map[string]image.Image),
	}
}

// image returns the decoded tile, fetching and caching it when needed.
func (s *tileStore) image(ctx context.Context, t TileCoord) (image.Image, error) {
	key := t.Key()

	s.mu.Lock()
	img, ok := s.decoded[key]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	data, err := s.tileBytes(ctx, key, t)
	if err != nil {
		return nil, err
	}

	img, err = png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode tile %s: %w", key, err)
	}

	s.mu.Lock()
	if len(s.decoded) >= maxDecodedTiles {
		s.decoded = make(map[string]image.Image)
	}
	s.decoded[key] = img
	s.mu.Unlock()

	return img, nil
}

func (s *tileStore) tileBytes(ctx context.Context, key string, t TileCoord) ([]byte, error) {
	if s.cache != nil {
		data, ok, err := s.cache.GetTile(ctx, key)
		if err != nil {
			log.Printf("tile cache read failed key=%s err=%v", key, err)
		} else if ok {
			return data, nil
		}
	}

	data, err := s.client.fetchTile(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("fetch tile %s: %w", key, err)
	}

	if s.cache != nil {
		if err := s.cache.PutTile(ctx, key, data); err != nil {
			log.Printf("tile cache write failed key=%s err=%v", key, err)
		}
	}

	return data, nil
}

// prefetch warms the decoded-tile map for a set of tiles with a small
// concurrent window. Errors are returned once; remaining fetches stop at
// the shared context.
func (s *tileStore) prefetch(ctx context.Context, tiles []TileCoord) error {
	const window = 4

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, window)
	errs := make(chan error, len(tiles))
	var wg sync.WaitGroup

	for _, t := range tiles {
		wg.Add(1)
		go func(t TileCoord) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs <- err
				return
			}
			if _, err := s.image(ctx, t); err != nil {
				errs <- err
				cancel()
				return
			}
			errs <- nil
		}(t)
	}

	wg.Wait()
	close(errs)

	var firstErr error
	for err := range errs {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// rgb8At returns the 8-bit RGB channels at a pixel, independent of the
// decoded image's native color model.
func rgb8At(img image.Image, x, y int) (r, g, b uint32) {
	bounds := img.Bounds()
	r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	return r16 >> 8, g16 >> 8, b16 >> 8
}
