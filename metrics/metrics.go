// Package metrics provides Prometheus metrics for the admin console.
// It exports:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//     for requests served by the console
//   - backend_request_total / backend_request_duration_seconds for calls to
//     the medicines backend
//   - mutation_total for create/update/delete outcomes
//   - rate_limiter_buckets_total for tracked rate limiter clients
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Mutation results
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultRejected  = "rejected"
	ResultCancelled = "cancelled"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	BackendRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_request_total",
			Help: "Requests sent to the medicines backend",
		},
		[]string{"endpoint", "outcome"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Medicines backend latency",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	MutationTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mutation_total",
			Help: "Create/update/delete attempts by result",
		},
		[]string{"action", "result"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(BackendRequestTotals)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(MutationTotals)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}

// ObserveMutation counts one mutation attempt
func ObserveMutation(action, result string) {
	MutationTotals.WithLabelValues(action, result).Inc()
}
