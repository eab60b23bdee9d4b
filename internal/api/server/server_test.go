package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1routes "clinic-scribe/internal/api/v1/routes"
	"clinic-scribe/internal/config"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	cfg := config.ServerConfig{
		Host:        "127.0.0.1",
		Port:        "0",
		Environment: "test",
	}
	return NewServer(cfg, &v1routes.ServiceContainer{}, logger)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIndexListsEndpoints(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/transcribe")
	assert.Contains(t, w.Body.String(), "/api/appointments/active")
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRequestIDHeaderOnResponses(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
