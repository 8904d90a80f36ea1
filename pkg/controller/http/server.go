package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// config holds internal HTTP server configuration
type config struct {
	addr         string
	snapshotPath string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithSnapshotPath sets the snapshot file served by the server
func WithSnapshotPath(path string) Option {
	return func(c *config) {
		c.snapshotPath = path
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, opts ...Option) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:         "localhost:8080",
		snapshotPath: "generated.yml",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	snapshot := &snapshotHandler{path: cfg.snapshotPath}
	router.Get("/health", snapshot.handleHealth)
	router.Get("/snapshot", snapshot.handleSnapshot)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
