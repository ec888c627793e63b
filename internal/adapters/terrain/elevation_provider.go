package terrain

import (
	"context"
	"fmt"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/ports"
)

// TerrainRGBProvider implements ElevationProvider by decoding Terrain-RGB
// elevation tiles: elevation is packed into the RGB channels of a PNG tile
// as -10000 + (R*65536 + G*256 + B) * 0.1 meters.
//
// The provider is safe for concurrent use.
type TerrainRGBProvider struct {
	tiles *tileStore
	zoom  int
}

// NewTerrainRGBProvider builds a provider for a z/x/y tile URL template.
// cache may be nil to disable persistent tile caching.
func NewTerrainRGBProvider(urlTemplate, apiKey string, zoom int, cache TileCache) (*TerrainRGBProvider, error) {
	if zoom < 0 || zoom > 22 {
		return nil, fmt.Errorf("terrain-rgb provider: zoom %d out of range", zoom)
	}
	client, err := newTileClient(urlTemplate, apiKey)
	if err != nil {
		return nil, fmt.Errorf("terrain-rgb provider: %w", err)
	}
	return &TerrainRGBProvider{tiles: newTileStore(client, cache), zoom: zoom}, nil
}

// GetElevation returns elevation in meters for a coordinate.
func (p *TerrainRGBProvider) GetElevation(ctx context.Context, c domain.Coordinate) (float64, error) {
	t := TileForCoordinate(c.Lat, c.Lon, p.zoom)
	img, err := p.tiles.image(ctx, t)
	if err != nil {
		return 0, &ports.ProviderError{Op: "get elevation", Err: err}
	}

	r, g, b := rgb8At(img, t.PixelX, t.PixelY)
	return decodeTerrainRGB(r, g, b), nil
}

// GetElevations returns one elevation per coordinate, in input order. The
// distinct tiles behind the coordinates are prefetched concurrently before
// the per-point decode.
func (p *TerrainRGBProvider) GetElevations(ctx context.Context, coords []domain.Coordinate) ([]float64, error) {
	if err := p.tiles.prefetch(ctx, distinctTiles(coords, p.zoom)); err != nil {
		return nil, &ports.ProviderError{Op: "get elevations", Err: err}
	}

	out := make([]float64, len(coords))
	for i, c := range coords {
		elevation, err := p.GetElevation(ctx, c)
		if err != nil {
			return nil, err
		}
		out[i] = elevation
	}
	return out, nil
}

func decodeTerrainRGB(r, g, b uint32) float64 {
	return -10000 + float64(r*65536+g*256+b)*0.1
}

func distinctTiles(coords []domain.Coordinate, zoom int) []TileCoord {
	seen := make(map[string]struct{})
	tiles := make([]TileCoord, 0, 4)
	for _, c := range coords {
		t := TileForCoordinate(c.Lat, c.Lon, zoom)
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tiles = append(tiles, t)
	}
	return tiles
}
