package terrain

import (
	"context"
	"fmt"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/ports"
)

// UnknownLandcoverClass is returned for palette colors the provider does
// not recognize. The engine classifies it with its low-confidence default.
const UnknownLandcoverClass = "unknown"

// defaultLandcoverPalette maps 0xRRGGBB tile colors to raw landcover class
// labels. The colors follow the WorldCover-style classification rasters the
// landcover tile service renders.
var defaultLandcoverPalette = map[uint32]string{
	0x006400: "wood",  // tree cover
	0xFFBB22: "scrub", // shrubland
	0xFFFF4C: "grass", // grassland
	0xF096FF: "crop",  // cropland
	0xFA0000: "built", // built-up
	0xB4B4B4: "bare",  // bare or sparse
	0xF0F0F0: "snow",  // snow and ice
	0x0064C8: "water", // permanent water
	0x0096A0: "wetland",
	0x00CF75: "mangrove",
	0xFAE6A0: "moss", // moss and lichen
}

// LandcoverTileProvider implements LandcoverProvider by mapping
// classification-tile palette colors to raw class labels.
//
// The provider is safe for concurrent use.
type LandcoverTileProvider struct {
	tiles   *tileStore
	zoom    int
	palette map[uint32]string
}

// NewLandcoverTileProvider builds a provider for a z/x/y tile URL template.
// cache may be nil to disable persistent tile caching; palette may be nil
// to use the default WorldCover-style palette.
func NewLandcoverTileProvider(urlTemplate, apiKey string, zoom int, cache TileCache, palette map[uint32]string) (*LandcoverTileProvider, error) {
	if zoom < 0 || zoom > 22 {
		return nil, fmt.Errorf("landcover provider: zoom %d out of range", zoom)
	}
	client, err := newTileClient(urlTemplate, apiKey)
	if err != nil {
		return nil, fmt.Errorf("landcover provider: %w", err)
	}
	if palette == nil {
		palette = defaultLandcoverPalette
	}
	return &LandcoverTileProvider{
		tiles:   newTileStore(client, cache),
		zoom:    zoom,
		palette: palette,
	}, nil
}

// GetLandcoverClass returns the raw landcover class label for a coordinate.
func (p *LandcoverTileProvider) GetLandcoverClass(ctx context.Context, c domain.Coordinate) (string, error) {
	t := TileForCoordinate(c.Lat, c.Lon, p.zoom)
	img, err := p.tiles.image(ctx, t)
	if err != nil {
		return "", &ports.ProviderError{Op: "get landcover class", Err: err}
	}

	r, g, b := rgb8At(img, t.PixelX, t.PixelY)
	if label, ok := p.palette[r<<16|g<<8|b]; ok {
		return label, nil
	}
	return UnknownLandcoverClass, nil
}

// GetLandcoverClasses returns one label per coordinate, in input order.
func (p *LandcoverTileProvider) GetLandcoverClasses(ctx context.Context, coords []domain.Coordinate) ([]string, error) {
	if err := p.tiles.prefetch(ctx, distinctTiles(coords, p.zoom)); err != nil {
		return nil, &ports.ProviderError{Op: "get landcover classes", Err: err}
	}

	out := make([]string, len(coords))
	for i, c := range coords {
		label, err := p.GetLandcoverClass(ctx, c)
		if err != nil {
			return nil, err
		}
		out[i] = label
	}
	return out, nil
}
