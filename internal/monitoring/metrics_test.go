package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePrediction(t *testing.T) {
	before := testutil.ToFloat64(predictions.WithLabelValues(OutcomeCorrect))
	ObservePrediction(OutcomeCorrect)
	assert.Equal(t, before+1, testutil.ToFloat64(predictions.WithLabelValues(OutcomeCorrect)))
}

func TestObserveInference_LabelsErrors(t *testing.T) {
	ObserveInference("test", errors.New("boom"), 10*time.Millisecond)
	ObserveInference("test", nil, 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(inferenceLatency, "sketchquiz_inference_duration_seconds"), 2)
}

func TestMetricsMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", PrometheusHandler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/2", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "204")))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, UnmatchedRoute, "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sketchquiz_http_requests_total")
}
