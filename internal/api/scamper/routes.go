package scamper

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers SCAMPER API routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/scamper", func(r chi.Router) {
		r.Post("/", h.Analyze)
		r.Get("/status", h.Status)
		r.Get("/agents/health", h.AgentsHealth)
		r.Post("/export", h.Export)
	})
}
