package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minetally/minetally/internal/database"
	"github.com/minetally/minetally/internal/handler"
	"github.com/minetally/minetally/internal/metrics"
	"github.com/minetally/minetally/internal/stats"
)

// Server wires the HTTP surface of the service
type Server struct {
	httpServer   *http.Server
	dbPool       database.Pool
	statsService stats.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, dbPool database.Pool, statsService stats.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(requestIDMiddleware)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(apiKey))

		r.Route("/stats", func(r chi.Router) {
			r.Get("/player", handler.HandleGetPlayerStats(statsService))
			r.Get("/rows", handler.HandleGetStatRows(statsService))
			r.Get("/total", handler.HandleGetStatTotal(statsService))
			r.Get("/describe", handler.HandleDescribePlayer(statsService))
			r.Post("/row", handler.HandleRecordRow(statsService))
			r.Post("/flush", handler.HandleFlushPlayer(statsService))
			r.Delete("/player", handler.HandleDeletePlayer(statsService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		dbPool:       dbPool,
		statsService: statsService,
	}
}

// Start begins listening for HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
