package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"firebreak-route-service/internal/api/dto"
	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/ports"
	"firebreak-route-service/internal/services"
)

// AnalysisHandler runs the route analysis pipeline for POST /analyze.
type AnalysisHandler struct {
	Elevation ports.ElevationProvider
	Landcover ports.LandcoverProvider
	Repo      ports.EquipmentRepository
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AnalyzeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "request body must contain a single JSON object")
		return
	}

	points := make([]domain.Coordinate, 0, len(req.Points))
	for _, p := range req.Points {
		points = append(points, domain.Coordinate{Lat: p.Lat, Lon: p.Lon})
	}

	override := domain.VegetationType(req.Vegetation)
	if override != "" && !domain.ValidVegetationType(override) {
		writeError(w, r, http.StatusBadRequest, "unknown vegetation type: "+req.Vegetation)
		return
	}

	report, err := services.AnalyzeRoute(r.Context(), services.AnalyzeRouteRequest{
		Points:             points,
		VegetationOverride: override,
	}, h.Elevation, h.Landcover, h.Repo)
	if err != nil {
		var provErr *ports.ProviderError
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &provErr):
			writeError(w, r, http.StatusBadGateway, "upstream data provider failed: "+provErr.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toAnalyzeResponse(report))
}

func toAnalyzeResponse(report *services.RouteReport) dto.AnalyzeResponse {
	res := dto.AnalyzeResponse{
		Track:      toTrackResponse(report.Track),
		Vegetation: toVegetationResponse(report.Vegetation),
		Overlap:    toOverlapResponse(report.Overlap),
		Results:    make([]dto.CalculationResultResponse, 0, len(report.Results)),
	}
	for _, r := range report.Results {
		res.Results = append(res.Results, dto.CalculationResultResponse{
			EquipmentID:       r.EquipmentID,
			EquipmentName:     r.EquipmentName,
			EquipmentType:     string(r.EquipmentType),
			TimeHours:         r.TimeHours,
			Cost:              r.Cost,
			Compatibility:     string(r.Compatibility),
			OverLimitFraction: r.OverLimitFraction,
			Drops:             r.Drops,
			Note:              r.Note,
		})
	}
	return res
}

func toTrackResponse(track *domain.TrackAnalysis) dto.TrackAnalysisResponse {
	res := dto.TrackAnalysisResponse{
		TotalDistanceMeters: track.TotalDistanceMeters,
		MaxSlopeDegrees:     track.MaxSlopeDegrees,
		AverageSlopeDegrees: track.AverageSlopeDegrees,
		SlopeDistribution:   make(map[string]float64, len(track.SlopeDistribution)),
		Segments:            make([]dto.SlopeSegmentResponse, 0, len(track.Segments)),
	}
	for cat, meters := range track.SlopeDistribution {
		res.SlopeDistribution[string(cat)] = meters
	}
	for _, seg := range track.Segments {
		res.Segments = append(res.Segments, dto.SlopeSegmentResponse{
			Start:          toPointResponse(seg.Start),
			End:            toPointResponse(seg.End),
			Path:           toPathResponse(seg.Path),
			SlopeDegrees:   seg.SlopeDegrees,
			Category:       string(seg.Category),
			StartElevation: seg.StartElevation,
			EndElevation:   seg.EndElevation,
			DistanceMeters: seg.DistanceMeters,
		})
	}
	return res
}

func toVegetationResponse(veg *domain.VegetationAnalysis) dto.VegetationAnalysisResponse {
	res := dto.VegetationAnalysisResponse{
		TotalDistanceMeters:    veg.TotalDistanceMeters,
		PredominantVegetation:  string(veg.PredominantVegetation),
		VegetationDistribution: make(map[string]float64, len(veg.VegetationDistribution)),
		OverallConfidence:      veg.OverallConfidence,
		Segments:               make([]dto.VegetationSegmentResponse, 0, len(veg.Segments)),
	}
	for vt, meters := range veg.VegetationDistribution {
		res.VegetationDistribution[string(vt)] = meters
	}
	for _, seg := range veg.Segments {
		res.Segments = append(res.Segments, dto.VegetationSegmentResponse{
			Start:          toPointResponse(seg.Start),
			End:            toPointResponse(seg.End),
			Path:           toPathResponse(seg.Path),
			Type:           string(seg.Type),
			Confidence:     seg.Confidence,
			LandcoverClass: seg.LandcoverClass,
			DistanceMeters: seg.DistanceMeters,
		})
	}
	return res
}

func toOverlapResponse(overlap domain.OverlapMatrix) map[string]map[string]float64 {
	res := make(map[string]map[string]float64, len(overlap))
	for cat, row := range overlap {
		out := make(map[string]float64, len(row))
		for vt, meters := range row {
			out[string(vt)] = meters
		}
		res[string(cat)] = out
	}
	return res
}

func toPointResponse(c domain.Coordinate) dto.PointRequest {
	return dto.PointRequest{Lat: c.Lat, Lon: c.Lon}
}

func toPathResponse(path []domain.Coordinate) []dto.PointRequest {
	if len(path) == 0 {
		return nil
	}
	out := make([]dto.PointRequest, 0, len(path))
	for _, c := range path {
		out = append(out, toPointResponse(c))
	}
	return out
}
