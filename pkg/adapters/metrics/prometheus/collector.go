package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aescanero/details/internal/propagation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements the service metrics using Prometheus.
// Each collector owns its registry so several servers can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	invalidMovieIDs  prometheus.Counter
	forwardedHeaders *prometheus.CounterVec
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	c := &Collector{
		registry: registry,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "details_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "details_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"route"},
		),
		invalidMovieIDs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "details_invalid_movie_id_total",
				Help: "Total number of details requests rejected for a non-numeric movie id",
			},
		),
		forwardedHeaders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "details_forwarded_headers_total",
				Help: "Total number of forwardable tracing and identity headers received, by header",
			},
			[]string{"header"},
		),
	}

	// Export every allowlisted header from the start, even before it is seen
	for _, name := range propagation.Allowlist() {
		c.forwardedHeaders.WithLabelValues(name)
	}

	return c
}

// Registry returns the registry the collector's metrics are registered with
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the HTTP handler exposing the collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordHTTPRequest records a served HTTP request
func (c *Collector) RecordHTTPRequest(route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordInvalidMovieID records a rejected movie id
func (c *Collector) RecordInvalidMovieID() {
	c.invalidMovieIDs.Inc()
}

// RecordForwardedHeaders records the forwardable headers captured for a request
func (c *Collector) RecordForwardedHeaders(names []string) {
	for _, name := range names {
		c.forwardedHeaders.WithLabelValues(name).Inc()
	}
}
