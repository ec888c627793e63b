package terrain

import (
	"fmt"
	"math"
)

// tileSize is the pixel width/height of the square raster tiles both tile
// services serve.
const tileSize = 256

// Web-Mercator tiles are undefined beyond these latitudes; coordinates
// outside are clamped to the edge tile.
const maxMercatorLatitude = 85.05112878

// TileCoord addresses a Web-Mercator ("slippy map") tile and a pixel inside it.
type TileCoord struct {
	Z, X, Y        int
	PixelX, PixelY int
}

// Key returns the z/x/y cache key for the tile (pixel offsets excluded).
func (t TileCoord) Key() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// TileForCoordinate projects a lat/lon into tile space at the given zoom.
func TileForCoordinate(lat, lon float64, zoom int) TileCoord {
	if lat > maxMercatorLatitude {
		lat = maxMercatorLatitude
	}
	if lat < -maxMercatorLatitude {
		lat = -maxMercatorLatitude
	}

	latRad := lat * math.Pi / 180
	n := math.Exp2(float64(zoom))
	fx := (lon + 180) / 360 * n
	fy := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n

	t := TileCoord{
		Z: zoom,
		X: clampTileIndex(int(math.Floor(fx)), int(n)),
		Y: clampTileIndex(int(math.Floor(fy)), int(n)),
	}
	t.PixelX = clampPixel(int((fx - math.Floor(fx)) * tileSize))
	t.PixelY = clampPixel(int((fy - math.Floor(fy)) * tileSize))
	return t
}

func clampTileIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clampPixel(p int) int {
	if p < 0 {
		return 0
	}
	if p >= tileSize {
		return tileSize - 1
	}
	return p
}
