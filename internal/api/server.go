package api

import (
	"net/http"
	"time"

	"github.com/futig/scamper-backend/internal/api/docs"
	"github.com/futig/scamper-backend/internal/api/middleware"
	scamperapi "github.com/futig/scamper-backend/internal/api/scamper"
	webapi "github.com/futig/scamper-backend/internal/api/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(scamperHandler *scamperapi.Handler, webHandler *webapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.Metrics)                       // Prometheus request metrics
	r.Use(corsHandler().Handler)                    // Handle CORS
	r.Use(chimiddleware.Timeout(180 * time.Second)) // Seven agents plus a summary can take a while

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	scamperapi.RegisterRoutes(r, scamperHandler)
	webapi.RegisterRoutes(r, webHandler)

	return r
}

// corsHandler lets browser clients served from other origins call the API
func corsHandler() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID", "X-Client"},
	})
}
