// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Movie details lookups (/details/{id})
//   - Health checks
//   - Prometheus metrics
//
// Every accepted connection has TCP_NODELAY set, since the exchanges are
// small request/response pairs.
package http
