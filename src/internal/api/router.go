package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(JSONContentType)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", h.GetConfig)
		r.With(TrustedPeerOnly).Patch("/config", h.UpdateConfig)
		r.Post("/config/validate", h.ValidateConfig)

		r.Get("/env", h.GetEnv)

		r.Get("/health", h.CheckHealth)
	})

	return r
}
