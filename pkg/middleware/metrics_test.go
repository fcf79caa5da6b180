package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsTracksInFlightRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics("retail-ops"))

	var during float64
	router.GET("/ping", func(c *gin.Context) {
		during = testutil.ToFloat64(httpRequestsInFlight)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}
