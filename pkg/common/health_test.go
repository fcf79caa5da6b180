package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthCheckWithDeps(t *testing.T) {
	router := gin.New()
	router.GET("/healthz", HealthCheckWithDeps("retail-ops", "1.0.0", map[string]func() error{
		"postgres": func() error { return nil },
		"redis":    func() error { return nil },
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "retail-ops", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.NotEmpty(t, resp.Uptime)
	assert.Equal(t, "healthy", resp.Checks["postgres"])
	assert.Equal(t, "healthy", resp.Checks["redis"])
}

func TestHealthCheckWithDepsUnhealthy(t *testing.T) {
	router := gin.New()
	router.GET("/healthz", HealthCheckWithDeps("retail-ops", "1.0.0", map[string]func() error{
		"postgres": func() error { return nil },
		"redis":    func() error { return errors.New("connection refused") },
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Checks["redis"], "unhealthy")
	assert.Equal(t, "healthy", resp.Checks["postgres"])
}

func TestHealthCheck(t *testing.T) {
	router := gin.New()
	router.GET("/healthz", HealthCheck("retail-ops", "1.0.0"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Uptime)
	assert.Empty(t, resp.Checks)
}
