package domain

// SlopeSegment is a contiguous run of route with a single slope category.
// Path carries the intermediate sample points so renderers can draw the
// segment without re-deriving them.
type SlopeSegment struct {
	Start          Coordinate
	End            Coordinate
	Path           []Coordinate
	SlopeDegrees   float64 // distance-weighted average over merged steps
	Category       SlopeCategory
	StartElevation float64 // meters
	EndElevation   float64 // meters
	DistanceMeters float64 // invariant: > 0
}

// TrackAnalysis is the slope-classified segmentation of a whole route.
// Segments cover the route in order with no gaps or overlaps: the sum of
// their distances equals TotalDistanceMeters, and so does the sum of the
// SlopeDistribution values.
type TrackAnalysis struct {
	TotalDistanceMeters float64
	Segments            []SlopeSegment
	MaxSlopeDegrees     float64 // steepest raw step, not a merged average
	AverageSlopeDegrees float64 // distance-weighted
	SlopeDistribution   map[SlopeCategory]float64
}

// VegetationSegment is a contiguous run of route with a single vegetation
// type. LandcoverClass preserves the raw provider label the classification
// was derived from.
type VegetationSegment struct {
	Start          Coordinate
	End            Coordinate
	Path           []Coordinate
	Type           VegetationType
	Confidence     float64 // [0,1], distance-weighted when merged
	LandcoverClass string
	DistanceMeters float64 // invariant: > 0
}

// VegetationAnalysis is the vegetation-classified segmentation of a whole
// route. It honors the same coverage invariant as TrackAnalysis.
type VegetationAnalysis struct {
	TotalDistanceMeters    float64
	Segments               []VegetationSegment
	PredominantVegetation  VegetationType // largest cumulative distance
	VegetationDistribution map[VegetationType]float64
	OverallConfidence      float64 // mean of per-sample confidences
}

// OverlapMatrix maps slope category x vegetation type to meters of route.
// Both source segmentations cover the same physical route, so the cells sum
// to the route's total distance.
type OverlapMatrix map[SlopeCategory]map[VegetationType]float64

// Add accumulates meters into a cell, creating the row as needed.
func (m OverlapMatrix) Add(category SlopeCategory, vegetation VegetationType, meters float64) {
	row, ok := m[category]
	if !ok {
		row = make(map[VegetationType]float64)
		m[category] = row
	}
	row[vegetation] += meters
}

// Total returns the sum over all cells.
func (m OverlapMatrix) Total() float64 {
	var total float64
	for _, row := range m {
		for _, meters := range row {
			total += meters
		}
	}
	return total
}
