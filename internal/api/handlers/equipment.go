package handlers

import (
	"log"
	"net/http"

	"firebreak-route-service/internal/api/dto"
	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/ports"
)

// EquipmentHandler serves the equipment catalog for GET /equipment.
type EquipmentHandler struct {
	Repo ports.EquipmentRepository
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	catalog, err := h.Repo.ListEquipment(r.Context())
	if err != nil {
		log.Printf("list equipment failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load equipment catalog")
		return
	}

	res := dto.EquipmentListResponse{Equipment: make([]dto.EquipmentResponse, 0, len(catalog))}
	for _, eq := range catalog {
		res.Equipment = append(res.Equipment, toEquipmentResponse(eq))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toEquipmentResponse(eq domain.Equipment) dto.EquipmentResponse {
	spec := eq.Spec()

	res := dto.EquipmentResponse{
		ID:                spec.ID,
		Name:              spec.Name,
		Type:              string(spec.Type),
		CostPerHour:       spec.CostPerHour,
		AllowedTerrain:    make([]string, 0, len(spec.AllowedTerrain)),
		AllowedVegetation: make([]string, 0, len(spec.AllowedVegetation)),
	}
	for _, level := range spec.AllowedTerrain {
		res.AllowedTerrain = append(res.AllowedTerrain, string(level))
	}
	for _, v := range spec.AllowedVegetation {
		res.AllowedVegetation = append(res.AllowedVegetation, string(v))
	}

	switch e := eq.(type) {
	case *domain.Machinery:
		rate := e.ClearingRateMetersPerHour
		res.ClearingRate = &rate
		res.MaxSlopeDegrees = e.MaxSlopeDegrees
		for _, row := range e.Performance {
			res.Performance = append(res.Performance, dto.PerformanceRowResponse{
				SlopeMaxDegrees: row.SlopeMaxDegrees,
				Vegetation:      string(row.Vegetation),
				MetersPerHour:   row.MetersPerHour,
				CostPerHour:     row.CostPerHour,
			})
		}
	case *domain.Aircraft:
		dropLen, turnaround := e.DropLengthMeters, e.TurnaroundMinutes
		res.DropLengthMeters = &dropLen
		res.TurnaroundMinutes = &turnaround
	case *domain.HandCrew:
		crew, rate := e.CrewSize, e.ClearingRatePerPersonMetersPerHour
		res.CrewSize = &crew
		res.RatePerPerson = &rate
	}

	return res
}
