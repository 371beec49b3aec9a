package api

import (
	"collector-route-service/internal/api/handlers"
	"collector-route-service/internal/ports"
	"collector-route-service/internal/services"
	"net/http"
)

// Planning parameters owned by the composition root.
type PlanConfig struct {
	Estimate   services.EstimateOptions
	MaxRouteKm float64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.StopRepository,
	locator ports.LocationProvider,
	tileManager *services.TileManager,
	cfg PlanConfig,
) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:       repo,
		Locator:    locator,
		Estimate:   cfg.Estimate,
		MaxRouteKm: cfg.MaxRouteKm,
	}
	tileHandler := &handlers.TileHandler{Manager: tileManager}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.List)
	mux.HandleFunc("/plan", planHandler.Plan)
	mux.HandleFunc("/tiles/save", tileHandler.Save)
	mux.HandleFunc("/tiles/count", tileHandler.Count)
	mux.HandleFunc("/tiles/", tileHandler.Get)
	mux.HandleFunc("/tiles", tileHandler.Delete)

	return loggingMiddleware(mux)
}
