package web

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers the form page
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Post("/", h.Submit)
}
