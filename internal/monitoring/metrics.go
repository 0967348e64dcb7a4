// Package monitoring holds the Prometheus collectors for the HTTP surface and
// the grading pipeline.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sketchquiz"

// Prediction outcomes, one per terminal state of a drawing submission.
const (
	OutcomeCorrect          = "correct"
	OutcomeIncorrect        = "incorrect"
	OutcomeInvalid          = "invalid"
	OutcomeNotFound         = "not_found"
	OutcomeInferenceError   = "inference_error"
	OutcomePersistenceError = "persistence_error"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route template and status code.",
	}, []string{"method", "route", "status"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template. Predict is dominated by inference.",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method", "route"})

	predictions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Drawing submissions by grading outcome.",
	}, []string{"outcome"})

	inferenceLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Latency of single captioning attempts.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider", "status"})
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpLatency, predictions, inferenceLatency)
	})
}

func ObservePrediction(outcome string) {
	predictions.WithLabelValues(outcome).Inc()
}

func ObserveInference(provider string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	inferenceLatency.WithLabelValues(provider, status).Observe(elapsed.Seconds())
}
