package dto

// PointRequest is one route vertex as drawn on the map.
type PointRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Points []PointRequest `json:"points"`

	// Vegetation overrides the predominant vegetation derived from the
	// landcover segmentation when non-empty.
	Vegetation string `json:"vegetation,omitempty"`
}

type SlopeSegmentResponse struct {
	Start          PointRequest   `json:"start"`
	End            PointRequest   `json:"end"`
	Path           []PointRequest `json:"path,omitempty"`
	SlopeDegrees   float64        `json:"slope_degrees"`
	Category       string         `json:"category"`
	StartElevation float64        `json:"start_elevation_m"`
	EndElevation   float64        `json:"end_elevation_m"`
	DistanceMeters float64        `json:"distance_meters"`
}

type TrackAnalysisResponse struct {
	TotalDistanceMeters float64                `json:"total_distance_meters"`
	MaxSlopeDegrees     float64                `json:"max_slope_degrees"`
	AverageSlopeDegrees float64                `json:"average_slope_degrees"`
	SlopeDistribution   map[string]float64     `json:"slope_distribution"`
	Segments            []SlopeSegmentResponse `json:"segments"`
}

type VegetationSegmentResponse struct {
	Start          PointRequest   `json:"start"`
	End            PointRequest   `json:"end"`
	Path           []PointRequest `json:"path,omitempty"`
	Type           string         `json:"vegetation_type"`
	Confidence     float64        `json:"confidence"`
	LandcoverClass string         `json:"landcover_class"`
	DistanceMeters float64        `json:"distance_meters"`
}

type VegetationAnalysisResponse struct {
	TotalDistanceMeters    float64                     `json:"total_distance_meters"`
	PredominantVegetation  string                      `json:"predominant_vegetation"`
	VegetationDistribution map[string]float64          `json:"vegetation_distribution"`
	OverallConfidence      float64                     `json:"overall_confidence"`
	Segments               []VegetationSegmentResponse `json:"segments"`
}

type CalculationResultResponse struct {
	EquipmentID       string   `json:"equipment_id"`
	EquipmentName     string   `json:"equipment_name"`
	EquipmentType     string   `json:"equipment_type"`
	TimeHours         float64  `json:"time_hours"`
	Cost              float64  `json:"cost"`
	Compatibility     string   `json:"compatibility"`
	OverLimitFraction *float64 `json:"over_limit_fraction,omitempty"`
	Drops             *int     `json:"drops,omitempty"`
	Note              string   `json:"note,omitempty"`
}

type AnalyzeResponse struct {
	Track      TrackAnalysisResponse         `json:"track"`
	Vegetation VegetationAnalysisResponse    `json:"vegetation"`
	Overlap    map[string]map[string]float64 `json:"overlap"`
	Results    []CalculationResultResponse   `json:"results"`
}
