package dto

type PerformanceRowResponse struct {
	SlopeMaxDegrees float64 `json:"slope_max_degrees"`
	Vegetation      string  `json:"vegetation"`
	MetersPerHour   float64 `json:"meters_per_hour"`
	CostPerHour     float64 `json:"cost_per_hour"`
}

type EquipmentResponse struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Type              string                   `json:"type"`
	CostPerHour       float64                  `json:"cost_per_hour"`
	AllowedTerrain    []string                 `json:"allowed_terrain"`
	AllowedVegetation []string                 `json:"allowed_vegetation"`
	ClearingRate      *float64                 `json:"clearing_rate_m_per_hour,omitempty"`
	MaxSlopeDegrees   *float64                 `json:"max_slope_degrees,omitempty"`
	Performance       []PerformanceRowResponse `json:"performance,omitempty"`
	DropLengthMeters  *float64                 `json:"drop_length_meters,omitempty"`
	TurnaroundMinutes *float64                 `json:"turnaround_minutes,omitempty"`
	CrewSize          *int                     `json:"crew_size,omitempty"`
	RatePerPerson     *float64                 `json:"rate_per_person_m_per_hour,omitempty"`
}

type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}
