package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/cinefront/internal/api/handlers"
	"github.com/amaumene/cinefront/internal/api/middleware"
	"github.com/amaumene/cinefront/internal/config"
	"github.com/amaumene/cinefront/internal/controllers"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Version is reported on /health; release builds set it with -ldflags "-X".
var Version = "dev"

// Server represents the HTTP server
type Server struct {
	server       *http.Server
	fetcher      controllers.Fetcher
	creationCtrl *controllers.CreationController
	renderer     *render.Renderer
	status       handlers.StatusSource
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	fetcher controllers.Fetcher,
	creationCtrl *controllers.CreationController,
	renderer *render.Renderer,
	status handlers.StatusSource,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		fetcher:      fetcher,
		creationCtrl: creationCtrl,
		renderer:     renderer,
		status:       status,
		logger:       logger,
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.Handler(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in the access log
func (s *Server) Handler(cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux, cfg)
	return middleware.Logging(mux, s.logger)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Forms
	mux.Handle("/", handlers.NewPageHandler(s.renderer, s.logger))

	// Search results
	mux.Handle("/search", handlers.NewSearchHandler(s.fetcher, s.renderer, s.logger))

	// Creation
	mux.Handle("/actors", handlers.NewActorHandler(s.creationCtrl, s.renderer, s.logger))
	mux.Handle("/movies", handlers.NewMovieHandler(s.creationCtrl, s.renderer, s.logger))

	// Health check
	healthHandler := handlers.NewHealthHandler(Version, s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	// Status endpoint
	statusHandler := handlers.NewStatusHandler(s.status, cfg.BackendURL, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	// Prometheus
	mux.Handle("/metrics", promhttp.Handler())
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
