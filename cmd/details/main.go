package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/details/internal/application/details"
	"github.com/aescanero/details/internal/config"
	"github.com/aescanero/details/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/details/pkg/api/grpc"
	"github.com/aescanero/details/pkg/api/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run starts the service and blocks until ctx is cancelled or a server
// fails. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		program := "details"
		if len(args) > 0 {
			program = args[0]
		}
		fmt.Fprintf(stdout, "usage: %s port\n", program)
		return 1
	}

	// Load configuration
	port, err := config.ParsePort(args[1])
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	cfg, err := config.Load(port)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting Movie Details service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Initialize application components
	httpCfg := &http.Config{
		Port:        cfg.HTTPPort,
		CORSOrigins: cfg.CORS.AllowOrigins,
		Logger:      logger,
	}

	var detailsSvc *details.Service
	if cfg.Metrics.Enabled {
		metricsCollector := prometheus.NewCollector()
		detailsSvc = details.NewService(details.NewValidator(), metricsCollector, logger)
		httpCfg.Metrics = metricsCollector
		httpCfg.MetricsPath = cfg.Metrics.Path
	} else {
		detailsSvc = details.NewService(details.NewValidator(), nil, logger)
	}
	httpCfg.Details = detailsSvc

	// Initialize API servers
	httpServer := http.NewServer(httpCfg)

	var grpcServer *grpc.Server
	if cfg.GRPCPort > 0 {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Port:   cfg.GRPCPort,
			Logger: logger,
		})
		if err != nil {
			logger.Error("failed to create gRPC server", zap.Error(err))
			return 1
		}
	}

	// Start servers
	errCh := make(chan error, 2)

	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	}

	logger.Info("Movie Details service started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Bool("metrics", cfg.Metrics.Enabled))

	// Wait for interrupt signal or a server failure
	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
		exitCode = 1
	}

	// Shutdown, abandoning requests still running after the timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	logger.Info("Movie Details service shut down complete")
	return exitCode
}

// initLogger initializes the logger based on log level and format
func initLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "console" {
		config.Encoding = "console"
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}
