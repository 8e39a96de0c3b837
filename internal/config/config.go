package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the details service
type Config struct {
	// Server configuration, the HTTP port is set from the command line
	HTTPPort  int
	GRPCPort  int    `env:"DETAILS_GRPC_PORT" envDefault:"0"` // 0 disables the gRPC health endpoint
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Metrics configuration
	Metrics MetricsConfig

	// CORS configuration
	CORS CORSConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `env:"DETAILS_METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"DETAILS_METRICS_PATH" envDefault:"/metrics"`
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowOrigins []string `env:"DETAILS_CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"5s"`
}

// ParsePort parses the listening port given on the command line
func ParsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", raw, err)
	}
	return port, nil
}

// Load reads configuration from environment variables and applies the
// listening port
func Load(httpPort int) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.HTTPPort = httpPort

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPCPort)
	}

	// Validate metrics config
	if c.Metrics.Enabled {
		if len(c.Metrics.Path) < 2 || c.Metrics.Path[0] != '/' {
			return fmt.Errorf("invalid metrics path: %q", c.Metrics.Path)
		}
		if c.Metrics.Path == "/health" || c.Metrics.Path == "/details" || strings.HasPrefix(c.Metrics.Path, "/details/") {
			return fmt.Errorf("metrics path %s collides with an API route", c.Metrics.Path)
		}
	}

	// Validate CORS origins
	for _, origin := range c.CORS.AllowOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin: %q (must be * or start with http:// or https://)", origin)
		}
	}

	if c.Timeouts.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.LogFormat)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
