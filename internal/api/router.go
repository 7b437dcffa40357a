// Package api exposes a small read-only status surface over the session
// registry: a health check and the list of active sessions.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/middleware"
)

// SessionLister is the view of the registry the status API needs
type SessionLister interface {
	Infos() []engine.Info
}

// RouterConfig holds configuration for the status router
type RouterConfig struct {
	Logger   *slog.Logger
	Sessions SessionLister
}

// NewRouter creates the status API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	h := NewStatusHandler(cfg.Sessions)

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/sessions", h.Sessions).Methods(http.MethodGet)

	return r
}
