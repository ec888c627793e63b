package api

import (
	"net/http"

	"firebreak-route-service/internal/api/handlers"
	"firebreak-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.EquipmentRepository,
	elevation ports.ElevationProvider,
	landcover ports.LandcoverProvider,
) http.Handler {
	mux := http.NewServeMux()

	equipmentHandler := &handlers.EquipmentHandler{Repo: repo}
	analysisHandler := &handlers.AnalysisHandler{
		Elevation: elevation,
		Landcover: landcover,
		Repo:      repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/equipment", equipmentHandler.List)
	mux.HandleFunc("/analyze", analysisHandler.Analyze)

	return loggingMiddleware(mux)
}
