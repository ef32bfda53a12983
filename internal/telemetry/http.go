package telemetry

import (
	"encoding/json"
	"net/http"
	"time"
)

// Handler serves GET /api/stats. The window defaults to the last 24 hours;
// ?since accepts an RFC3339 timestamp.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	since := time.Now().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "since must be RFC3339"})
			return
		}
		since = parsed
	}

	events, err := h.repo.GetEvents(since, nil)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	stats, err := CalculateStats(events, since)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(stats)
}
