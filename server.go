package arnav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/arnav/directions"
	"github.com/theoremus-urban-solutions/arnav/internal/logging"
	"github.com/theoremus-urban-solutions/arnav/navigator"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// RouteSource fetches the first leg of a walking route.
type RouteSource interface {
	Route(ctx context.Context, origin, destination route.Point) (directions.Leg, error)
}

// ServerOptions configures a Server.
type ServerOptions struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Producer names the session in responses.
	Producer string
	// Routes enables POST /api/route; may be nil.
	Routes RouteSource
	Logger *slog.Logger
}

// Server exposes navigator state over HTTP.
type Server struct {
	nav      *navigator.Navigator
	routes   RouteSource
	producer string
	logger   *slog.Logger
	server   *http.Server
}

// NewServer wires the HTTP handlers around nav.
func NewServer(nav *navigator.Navigator, opts ServerOptions) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	s := &Server{
		nav:      nav,
		routes:   opts.Routes,
		producer: opts.Producer,
		logger:   opts.Logger,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/state.json", s.handleStateJSON)
	mux.HandleFunc("/api/route", s.handleLoadRoute)
	mux.HandleFunc("/api/route.geojson", s.handleRouteGeoJSON)
	mux.HandleFunc("/api/route.gpx", s.handleRouteGPX)
	return mux
}

// Start begins serving in the background.
func (s *Server) Start() {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", "error", err)
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT, SIGTERM or ctx is done, then
// shuts the server down.
func HandleGracefulShutdown(ctx context.Context, s *Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
		s.logger.Info("context done, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server shutdown error", "error", err)
	}
	s.logger.Info("server stopped")
}
