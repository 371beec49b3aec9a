package handlers

import (
	"collector-route-service/internal/api/dto"
	"collector-route-service/internal/ports"
	"collector-route-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
)

type TileHandler struct {
	Manager *services.TileManager
}

// Save caches every tile covering the requested viewport region and
// reports the batch outcome. Per-tile fetch failures are tolerated and
// counted; only a store failure aborts the batch.
func (h *TileHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SaveTilesRequest

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

	region := services.TileRegion{
		MinLat:  req.MinLat,
		MinLng:  req.MinLng,
		MaxLat:  req.MaxLat,
		MaxLng:  req.MaxLng,
		MinZoom: req.MinZoom,
		MaxZoom: req.MaxZoom,
	}

	events, err := h.Manager.SaveTiles(r.Context(), region)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var last services.SaveEvent
	for ev := range events {
		last = ev
	}

	res := dto.SaveTilesResponse{
		Saved:  last.Saved,
		Failed: last.Failed,
		Total:  last.Total,
	}

	if last.Kind == services.SaveFailed {
		log.Printf("save tiles aborted: saved=%d failed=%d total=%d err=%v",
			last.Saved, last.Failed, last.Total, last.Err)
		res.Error = "offline maps unavailable"
		writeJSON(w, r, http.StatusInsufficientStorage, res)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves a cached tile image at /tiles/{z}/{x}/{y}. This is the
// offline read path: the response comes straight from the store and a
// tile that was never saved is a plain 404, no network fallback.
func (h *TileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	z, x, y, ok := parseTilePath(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	data, err := h.Manager.Tile(r.Context(), z, x, y)
	if err != nil {
		if errors.Is(err, ports.ErrTileNotFound) {
			writeError(w, r, http.StatusNotFound, "tile not cached")
			return
		}
		log.Printf("read tile failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("write tile failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// parseTilePath extracts z/x/y from a /tiles/{z}/{x}/{y} request path.
func parseTilePath(path string) (z, x, y int, ok bool) {
	parts := strings.Split(strings.TrimPrefix(path, "/tiles/"), "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], true
}

// Count reports how many tiles are cached and whether the map is
// offline-ready; the state comes straight from the store on every call.
func (h *TileHandler) Count(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	n, err := h.Manager.TileCount(r.Context())
	if err != nil {
		log.Printf("tile count failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TileCountResponse{Count: n, OfflineReady: n > 0})
}

// Delete clears the tile cache. Clearing an empty cache succeeds.
func (h *TileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.Manager.DeleteTiles(r.Context()); err != nil {
		log.Printf("delete tiles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}
