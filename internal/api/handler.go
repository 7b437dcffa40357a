package api

import (
	"encoding/json"
	"net/http"

	"github.com/turkeydev/gamesbot/internal/engine"
)

// StatusHandler serves the health and session listing endpoints
type StatusHandler struct {
	sessions SessionLister
}

// NewStatusHandler creates a StatusHandler over the given session view
func NewStatusHandler(sessions SessionLister) *StatusHandler {
	return &StatusHandler{sessions: sessions}
}

// Health reports process liveness
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionsResponse struct {
	Sessions []engine.Info `json:"sessions"`
}

// Sessions lists every active game session
func (h *StatusHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	infos := h.sessions.Infos()
	if infos == nil {
		infos = []engine.Info{}
	}
	writeJSON(w, http.StatusOK, sessionsResponse{Sessions: infos})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
