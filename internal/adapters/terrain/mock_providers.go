package terrain

import (
	"context"

	"firebreak-route-service/internal/domain"
)

// MockElevationProvider returns elevation as a deterministic function of
// position. A nil Fn means sea level everywhere.
type MockElevationProvider struct {
	Fn  func(c domain.Coordinate) float64
	Err error // returned from every lookup when set
}

func (m *MockElevationProvider) GetElevation(_ context.Context, c domain.Coordinate) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Fn == nil {
		return 0, nil
	}
	return m.Fn(c), nil
}

// MockLandcoverProvider returns a deterministic landcover label per
// coordinate. Fn wins over Label; with neither set it returns "grass".
type MockLandcoverProvider struct {
	Label string
	Fn    func(c domain.Coordinate) string
	Err   error // returned from every lookup when set
}

func (m *MockLandcoverProvider) GetLandcoverClass(_ context.Context, c domain.Coordinate) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Fn != nil {
		return m.Fn(c), nil
	}
	if m.Label != "" {
		return m.Label, nil
	}
	return "grass", nil
}
