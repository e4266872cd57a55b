package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/enhance"
	"cadence/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Options carries the dependencies used to build plans.
type Options struct {
	LLM     config.LLM
	Catalog *catalog.Catalog

	// Enhancer, when set, is used for requests with use_llm instead of
	// building a provider from LLM.
	Enhancer enhance.CaptionEnhancer
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     config.Server
	opts       Options
	log        zerolog.Logger
}

// New creates a new HTTP server instance
func New(cfg config.Server, opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		opts:   opts,
		log:    logger.With("component", "server"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Timeout() + 10*time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.config.Timeout()))
	s.router.Use(securityHeaders)

	if len(s.config.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any major browsers
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleListCategories)
		r.Post("/plans", s.handleCreatePlan)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Dur("request_timeout", s.config.Timeout()).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info().Msg("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
