package terrain

import (
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebreak-route-service/internal/domain"
)

func landcoverServer(t *testing.T, c color.RGBA) *httptest.Server {
	t.Helper()
	tile := tilePNG(t, c)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(tile)
	}))
}

func TestLandcoverTileProviderDefaultPalette(t *testing.T) {
	cases := []struct {
		color color.RGBA
		want  string
	}{
		{color.RGBA{R: 0x00, G: 0x64, B: 0x00, A: 255}, "wood"},
		{color.RGBA{R: 0xFF, G: 0xBB, B: 0x22, A: 255}, "scrub"},
		{color.RGBA{R: 0xFF, G: 0xFF, B: 0x4C, A: 255}, "grass"},
		{color.RGBA{R: 0xF0, G: 0x96, B: 0xFF, A: 255}, "crop"},
		{color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}, UnknownLandcoverClass},
	}

	for _, tc := range cases {
		srv := landcoverServer(t, tc.color)

		provider, err := NewLandcoverTileProvider(srv.URL+"/{z}/{x}/{y}.png", "", 12, nil, nil)
		if err != nil {
			srv.Close()
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := provider.GetLandcoverClass(context.Background(), domain.Coordinate{Lat: 45, Lon: 7})
		srv.Close()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Errorf("color %02X%02X%02X = %q, want %q", tc.color.R, tc.color.G, tc.color.B, got, tc.want)
		}
	}
}

func TestLandcoverTileProviderCustomPalette(t *testing.T) {
	srv := landcoverServer(t, color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 255})
	defer srv.Close()

	palette := map[uint32]string{0xAABBCC: "heath"}
	provider, err := NewLandcoverTileProvider(srv.URL+"/{z}/{x}/{y}.png", "", 12, nil, palette)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := provider.GetLandcoverClass(context.Background(), domain.Coordinate{Lat: 45, Lon: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "heath" {
		t.Fatalf("label = %q, want heath", got)
	}
}

func TestLandcoverTileProviderBatch(t *testing.T) {
	srv := landcoverServer(t, color.RGBA{R: 0x00, G: 0x64, B: 0x00, A: 255})
	defer srv.Close()

	provider, err := NewLandcoverTileProvider(srv.URL+"/{z}/{x}/{y}.png", "", 12, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords := []domain.Coordinate{{Lat: 45, Lon: 7}, {Lat: 45.01, Lon: 7.01}}
	labels, err := provider.GetLandcoverClasses(context.Background(), coords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(labels))
	}
	for i, label := range labels {
		if label != "wood" {
			t.Errorf("label %d = %q, want wood", i, label)
		}
	}
}
