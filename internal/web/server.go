// Package web exposes the importer operations over HTTP as a JSON API.
//
// The server owns a single [core.Importer] instance: one loaded table
// per process, matching the single-user model of the tool. All
// endpoints are thin wrappers over the core operations; failures are
// translated by respondError into user-facing messages with stable
// error codes.
package web

import (
	"context"
	"net/http"

	"github.com/chira-platforms/csvimport/internal/config"
	"github.com/chira-platforms/csvimport/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the import API.
type Server struct {
	importer *core.Importer
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server around the given importer instance.
func NewServer(importer *core.Importer, cfg *config.Config) *Server {
	s := &Server{
		importer: importer,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Loading
		r.Post("/load", s.handleLoad)
		r.Get("/history", s.handleHistory)

		// Table access
		r.Get("/headers", s.handleHeaders)
		r.Get("/rows", s.handleRows)
		r.Get("/sample", s.handleSample)
		r.Get("/filter", s.handleFilter)

		// Summary
		r.Get("/summary", s.handleSummary)
		r.Post("/summary/export", s.handleExportSummary)
	})
}

// Start begins listening. It blocks until the server stops.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
