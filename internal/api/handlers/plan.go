package handlers

import (
	"collector-route-service/internal/api/dto"
	"collector-route-service/internal/ports"
	"collector-route-service/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
)

type PlanHandler struct {
	Repo       ports.StopRepository
	Locator    ports.LocationProvider
	Estimate   services.EstimateOptions
	MaxRouteKm float64
}

// Plan computes a fresh pickup route for the collector: current position
// (with fallback), stop sequencing, metrics, and the directions link.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = "driving"
	}

	svcReq := services.PlanPickupsRequest{
		Mode:            mode,
		IncludeRequests: req.IncludeRequests,
		MaxRouteKm:      h.MaxRouteKm,
	}

	plan, err := services.PlanPickups(r.Context(), svcReq, h.Repo, h.Locator, h.Estimate)
	if err != nil {
		log.Printf("plan pickups failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlanResponse{
		Start: dto.StartResponse{
			Latitude:   plan.Start.Lat,
			Longitude:  plan.Start.Lng,
			IsFallback: plan.Start.IsFallback,
		},
		Stops:            make([]dto.StopResponse, 0, len(plan.Stops)),
		TotalDistanceKm:  plan.Metrics.TotalDistanceKm,
		TotalTimeMinutes: plan.Metrics.TotalTimeMinutes,
		DirectionsURL:    plan.DirectionsURL,
		Warning:          plan.Warning,
	}
	for _, s := range plan.Stops {
		res.Stops = append(res.Stops, toStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}
