package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aescanero/details/internal/application/details"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordedRequest struct {
	route  string
	status int
}

type fakeMetrics struct {
	mu        sync.Mutex
	requests  []recordedRequest
	invalid   int
	forwarded [][]string
}

func (f *fakeMetrics) RecordHTTPRequest(route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{route: route, status: status})
}

func (f *fakeMetrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "# fake metrics\n")
	})
}

func (f *fakeMetrics) RecordInvalidMovieID() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalid++
}

func (f *fakeMetrics) RecordForwardedHeaders(names []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forwarded = append(f.forwarded, names)
}

func setupTestServer(t *testing.T) (*Server, *fakeMetrics) {
	t.Helper()

	logger := zap.NewNop()
	metrics := &fakeMetrics{}
	svc := details.NewService(details.NewValidator(), metrics, logger)

	s := NewServer(&Config{
		Port:        9080,
		Details:     svc,
		Metrics:     metrics,
		MetricsPath: "/metrics",
		CORSOrigins: []string{"*"},
		Logger:      logger,
	})
	return s, metrics
}

func doRequest(s *Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s, _ := setupTestServer(t)

	for i := 0; i < 3; i++ {
		w := doRequest(s, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, `{"status":"Movie Details is healthy"}`, w.Body.String())

		// Interleave other traffic, health must not change
		doRequest(s, http.MethodGet, "/details/xyz", nil)
	}
}

func TestServer_Details(t *testing.T) {
	s, metrics := setupTestServer(t)

	w := doRequest(s, http.MethodGet, "/details/123", map[string]string{"x-b3-traceid": "deadbeef"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t,
		`{"id":123,"title":"Interstellar","studio":"Paramount Pictures, Warner Bros. Pictures","runtime":169,"genre":"Sci-Fi, Drama","language":"English"}`,
		w.Body.String())

	require.Len(t, metrics.forwarded, 1)
	assert.Equal(t, []string{"x-b3-traceid"}, metrics.forwarded[0])
}

func TestServer_Details_AnyInteger(t *testing.T) {
	s, _ := setupTestServer(t)

	ids := []int64{0, 1, 42, -1, -987654321, math.MaxInt64, math.MinInt64}
	for _, id := range ids {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			w := doRequest(s, http.MethodGet, fmt.Sprintf("/details/%d", id), nil)
			require.Equal(t, http.StatusOK, w.Code)

			var movie details.MovieDetails
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movie))
			assert.Equal(t, *details.NewMovieDetails(id), movie)
		})
	}
}

func TestServer_Details_TrailingSlash(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doRequest(s, http.MethodGet, "/details/7/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7,`)
}

func TestServer_Details_InvalidID(t *testing.T) {
	s, metrics := setupTestServer(t)

	paths := []string{"/details/abc", "/details/12.5", "/details/", "/details", "/details/xyz", "/details/99999999999999999999"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := doRequest(s, http.MethodGet, path, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, `{"error":"please provide numeric movie id"}`, w.Body.String())
		})
	}

	assert.Equal(t, len(paths), metrics.invalid)
	assert.Empty(t, metrics.forwarded)
}

func TestServer_Details_ForwardedHeaders(t *testing.T) {
	s, metrics := setupTestServer(t)

	w := doRequest(s, http.MethodGet, "/details/1", map[string]string{
		"x-request-id":  "abc123",
		"x-custom":      "foo",
		"traceparent":   "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01",
		"Authorization": "Bearer t",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, metrics.forwarded, 1)
	assert.Equal(t, []string{"authorization", "traceparent", "x-request-id"}, metrics.forwarded[0])
}

func TestServer_RequestID(t *testing.T) {
	s, metrics := setupTestServer(t)

	w := doRequest(s, http.MethodGet, "/health", map[string]string{"X-Request-ID": "abc123"})
	assert.Equal(t, "abc123", w.Header().Get("X-Request-ID"))

	w = doRequest(s, http.MethodGet, "/details/5", nil)
	generated := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err, "expected a generated uuid, got %q", generated)

	// A generated id is not mistaken for an inbound one
	require.Len(t, metrics.forwarded, 1)
	assert.Empty(t, metrics.forwarded[0])
}

func TestServer_Metrics(t *testing.T) {
	s, metrics := setupTestServer(t)

	doRequest(s, http.MethodGet, "/health", nil)
	doRequest(s, http.MethodGet, "/details/1", nil)
	doRequest(s, http.MethodGet, "/details/x", nil)
	doRequest(s, http.MethodGet, "/details", nil)
	doRequest(s, http.MethodGet, "/nope", nil)

	assert.Equal(t, []recordedRequest{
		{route: "/health", status: http.StatusOK},
		{route: "/details/*path", status: http.StatusOK},
		{route: "/details/*path", status: http.StatusBadRequest},
		{route: "/details", status: http.StatusBadRequest},
		{route: unmatchedRoute, status: http.StatusNotFound},
	}, metrics.requests)

	w := doRequest(s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# fake metrics\n", w.Body.String())
}

func TestServer_MetricsDisabled(t *testing.T) {
	s := NewServer(&Config{Port: 9080})

	w := doRequest(s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(s, http.MethodGet, "/details/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_CORS(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doRequest(s, http.MethodGet, "/details/1", map[string]string{"Origin": "https://bookinfo.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(s, http.MethodOptions, "/details/1", map[string]string{
		"Origin":                        "https://bookinfo.example",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Traceparent")

	// No Origin, no CORS headers
	w = doRequest(s, http.MethodGet, "/health", nil)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s, _ := setupTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(listener)
	}()

	url := "http://" + listener.Addr().String()

	resp, err := http.Get(url + "/details/123")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), `{"id":123,`))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after shutdown")
	}

	_, err = http.Get(url + "/health")
	assert.Error(t, err)
}

func TestServer_StartInvalidAddress(t *testing.T) {
	s := NewServer(&Config{Port: -1})

	err := s.Start()
	assert.Error(t, err)
}
