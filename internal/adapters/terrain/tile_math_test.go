package terrain

import "testing"

func TestTileForCoordinateZoomZero(t *testing.T) {
	for _, c := range []struct{ lat, lon float64 }{
		{0, 0}, {51.5, -0.12}, {-33.86, 151.2},
	} {
		tile := TileForCoordinate(c.lat, c.lon, 0)
		if tile.X != 0 || tile.Y != 0 || tile.Z != 0 {
			t.Errorf("(%g, %g) at zoom 0 = %d/%d/%d, want 0/0/0", c.lat, c.lon, tile.Z, tile.X, tile.Y)
		}
	}
}

func TestTileForCoordinateOrigin(t *testing.T) {
	tile := TileForCoordinate(0, 0, 1)
	if tile.X != 1 || tile.Y != 1 {
		t.Fatalf("origin at zoom 1 = %d/%d, want 1/1", tile.X, tile.Y)
	}
	if tile.PixelX != 0 || tile.PixelY != 0 {
		t.Fatalf("origin pixel = (%d, %d), want (0, 0)", tile.PixelX, tile.PixelY)
	}
}

func TestTileForCoordinateClampsLatitude(t *testing.T) {
	// Poleward of the Web-Mercator limit the projection is undefined;
	// coordinates clamp to the edge tile instead of overflowing.
	tile := TileForCoordinate(89.9, 0, 4)
	if tile.Y != 0 {
		t.Errorf("north pole tile Y = %d, want 0", tile.Y)
	}
	tile = TileForCoordinate(-89.9, 0, 4)
	if tile.Y != 15 {
		t.Errorf("south pole tile Y = %d, want 15", tile.Y)
	}
}

func TestTileForCoordinateClampsAntimeridian(t *testing.T) {
	tile := TileForCoordinate(0, 180, 2)
	if tile.X != 3 {
		t.Errorf("antimeridian tile X = %d, want 3", tile.X)
	}
}

func TestTileCoordKey(t *testing.T) {
	tile := TileCoord{Z: 14, X: 8191, Y: 5461}
	if got := tile.Key(); got != "14/8191/5461" {
		t.Fatalf("key = %q, want 14/8191/5461", got)
	}
}
