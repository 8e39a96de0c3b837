package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aescanero/details/internal/application/details"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsCollector records HTTP traffic and exposes it for scraping
type MetricsCollector interface {
	RecordHTTPRequest(route string, status int, duration time.Duration)
	Handler() http.Handler
}

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	details *details.Service
	metrics MetricsCollector
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port        int
	Details     *details.Service
	Metrics     MetricsCollector // nil disables instrumentation and the metrics route
	MetricsPath string
	CORSOrigins []string // empty disables CORS handling
	Logger      *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	detailsSvc := cfg.Details
	if detailsSvc == nil {
		detailsSvc = details.NewService(nil, nil, logger)
	}

	// Release mode unless tests already selected test mode
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	if cfg.Metrics != nil {
		router.Use(instrument(cfg.Metrics))
	}
	if len(cfg.CORSOrigins) > 0 {
		router.Use(corsMiddleware(cfg.CORSOrigins))
	}

	s := &Server{
		router:  router,
		details: detailsSvc,
		metrics: cfg.Metrics,
		logger:  logger,
	}

	s.setupRoutes(cfg.MetricsPath)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(metricsPath string) {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Details, the id is the last path segment
	s.router.GET("/details", s.handleGetDetails)
	s.router.GET("/details/*path", s.handleGetDetails)

	// Metrics
	if s.metrics != nil {
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		s.router.GET(metricsPath, gin.WrapH(s.metrics.Handler()))
	}
}

// Handler returns the server's request handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and serves until shutdown
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	return s.Serve(listener)
}

// Serve accepts connections on listener until shutdown
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("starting HTTP server", zap.String("addr", listener.Addr().String()))

	ln := &noDelayListener{Listener: listener, logger: s.logger}
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown stops the server. Requests still running when ctx expires are
// abandoned and their connections closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		_ = s.server.Close()
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
