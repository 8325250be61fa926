package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/justestif/moodtunes/internal/logging"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = ":8080"

	// DefaultMaxUploadBytes caps the body of an upload request.
	DefaultMaxUploadBytes = 10 << 20
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Server is the HTTP server for the mood API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   *slog.Logger
	origins  []string
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig, predictor Predictor, playlists Playlists) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: NewHandlers(predictor, playlists, cfg.MaxUploadBytes, cfg.Logger),
		logger:   cfg.Logger,
		origins:  cfg.AllowedOrigins,
	}

	// Configure middleware
	s.setupMiddleware()

	// Configure routes
	s.setupRoutes()

	// WriteTimeout must cover classifier retries.
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:     s.origins,
		AllowedMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"*"},
		MaxAge:             600,
		OptionsPassthrough: true,
	}))
	s.router.Use(preflightNoContent)
}

// preflightNoContent ends CORS preflight requests with 204 once the cors
// handler has written its headers.
func preflightNoContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handlers.Health)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/predict/text", s.handlers.PredictText)
		r.Post("/predict/image", s.handlers.PredictImage)
		r.Post("/predict/images", s.handlers.PredictImages)

		r.Get("/moods", s.handlers.Moods)
		r.Get("/playlists/{mood}", s.handlers.Playlist)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for cancellation or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
