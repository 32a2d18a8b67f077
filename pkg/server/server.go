// Package server provides the HTTP server of the Urban Vision API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"urbanvision-ao/urbanvision/pkg/config"
	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/proxy/handlers"
	"urbanvision-ao/urbanvision/pkg/proxy/middleware"
	"urbanvision-ao/urbanvision/pkg/proxy/types"
	"urbanvision-ao/urbanvision/pkg/telemetry/health"
	"urbanvision-ao/urbanvision/pkg/telemetry/metrics"
	"urbanvision-ao/urbanvision/pkg/telemetry/tracing"
)

// Server serves the /api endpoints, the metrics endpoint and the static
// frontend.
type Server struct {
	config       *config.Config
	gateway      *gateway.Gateway
	metrics      *metrics.Collector
	tracer       *tracing.Tracer
	checker      *health.Checker
	version      health.VersionInfo
	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         net.Addr
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves the collector's registry on the configured metrics path
// and records HTTP metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) { s.metrics = c }
}

// WithTracer wraps every request in a server span.
func WithTracer(t *tracing.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithHealthChecker serves the checker on /api/ready.
func WithHealthChecker(c *health.Checker) Option {
	return func(s *Server) { s.checker = c }
}

// WithVersion sets the build information served on /api/version.
func WithVersion(version, commit, buildTime string) Option {
	return func(s *Server) {
		s.version = health.VersionInfo{Version: version, Commit: commit, BuildTime: buildTime}
	}
}

// NewServer creates a server for cfg answering generation requests through gw.
func NewServer(cfg *config.Config, gw *gateway.Gateway, opts ...Option) *Server {
	s := &Server{
		config:  cfg,
		gateway: gw,
		version: health.VersionInfo{Version: "dev", Commit: "unknown", BuildTime: "unknown"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	cfg := s.config.Server
	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}

	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}
	s.addr = ln.Addr()
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"address", ln.Addr().String(),
			"static_dir", cfg.StaticDir,
			"configured", s.gateway.Configured(),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		s.markStopped()
		return err
	}
}

// Shutdown gracefully shuts down the server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		s.mu.RUnlock()
		if !running {
			return
		}

		timeout := s.config.Server.ShutdownTimeout
		slog.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.markStopped()
		slog.Info("server stopped")
	})

	return shutdownErr
}

func (s *Server) markStopped() {
	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the address the server listens on, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	cfg := s.config
	dec := types.Decoder{StrictAreas: cfg.Input.StrictAreas}

	mux := http.NewServeMux()
	mux.Handle("/api/chat", handlers.NewChatHandler(s.gateway, dec))
	mux.Handle("/api/analyze", handlers.NewAnalyzeHandler(s.gateway, dec))
	mux.Handle("/api/predict", handlers.NewPredictHandler(s.gateway, dec))
	mux.Handle("/api/recommend", handlers.NewRecommendHandler(s.gateway, dec))
	mux.Handle("/api/health", handlers.NewHealthHandler(s.gateway))
	mux.Handle("/api/version", health.VersionHandler(s.version.Version, s.version.Commit, s.version.BuildTime))
	if s.checker != nil {
		mux.Handle("/api/ready", s.checker.ReadinessHandler())
	}
	if s.metrics != nil && cfg.Telemetry.Metrics.Enabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, s.metrics.Handler())
	}
	mux.Handle("/", handlers.NewStaticHandler(cfg.Server.StaticDir))

	var handler http.Handler = mux
	handler = middleware.TimeoutMiddleware(cfg.Server.RequestTimeout)(handler)
	handler = middleware.CORSMiddleware(cfg.Server.CORS)(handler)
	handler = tracing.HTTPMiddleware(s.tracer)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.MetricsMiddleware(s.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}
