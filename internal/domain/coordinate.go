package domain

// Immutable geographic coordinate (latitude, longitude) in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// TrackPoint is a coordinate on a drawn route. Order along the route is
// significant and is never reordered.
type TrackPoint = Coordinate
