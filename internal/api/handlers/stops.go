package handlers

import (
	"collector-route-service/internal/api/dto"
	"collector-route-service/internal/domain"
	"collector-route-service/internal/ports"
	"log"
	"net/http"
)

// StopHandler exposes read-only pickup stop retrieval endpoints.
type StopHandler struct {
	Repo ports.StopRepository
}

// List returns accepted assignments and pending requests together, each
// tagged with its type.
func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	assignments, err := h.Repo.ListAcceptedAssignments(r.Context())
	if err != nil {
		log.Printf("list assignments failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	requests, err := h.Repo.ListPendingRequests(r.Context())
	if err != nil {
		log.Printf("list requests failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	stops := append(assignments, requests...)
	res := dto.ListStopsResponse{
		Stops: make([]dto.StopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, toStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// toStopResponse maps a domain stop to its wire shape. Invalid
// coordinates are rendered as null rather than NaN, which JSON cannot
// represent.
func toStopResponse(s domain.Stop) dto.StopResponse {
	out := dto.StopResponse{
		StopID:       s.ID,
		Type:         s.Type,
		Location:     s.Location,
		CustomerName: s.CustomerName,
		WasteType:    s.WasteType,
		Status:       s.Status,
	}
	if s.HasValidCoordinates() {
		lat, lng := s.Latitude, s.Longitude
		out.Latitude = &lat
		out.Longitude = &lng
	}
	return out
}
