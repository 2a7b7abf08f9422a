package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"file-aggregator/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_CommonRoutes(t *testing.T) {
	router, err := NewEngine("test-service", &config.Config{LogLevel: "info"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, EndPointHealth, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"test-service"`)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, EndPointMetrics, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "fileaggregator_http_requests_total"))
}

func TestNewEngine_CORSOnUnknownRoute(t *testing.T) {
	router, err := NewEngine("test-service", &config.Config{})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewEngine_InvalidTrustedProxies(t *testing.T) {
	_, err := NewEngine("test-service", &config.Config{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}
