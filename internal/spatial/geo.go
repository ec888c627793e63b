// Package spatial provides the geographic math the analysis engine is built
// on: great-circle distances and straight lat/lon interpolation.
package spatial

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius.
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Interpolate returns the point a fraction t along the straight lat/lon
// segment from point 1 to point 2. Planar interpolation is deliberate:
// resample intervals are short enough that great-circle curvature stays far
// below the sampling tolerance, and it keeps inserted points exactly on the
// drawn polyline.
func Interpolate(lat1, lon1, lat2, lon2, t float64) (float64, float64) {
	return lat1 + (lat2-lat1)*t, lon1 + (lon2-lon1)*t
}
