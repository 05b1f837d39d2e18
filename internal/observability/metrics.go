package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	latencySeconds        *prometheus.HistogramVec
	errorsTotal           *prometheus.CounterVec
	stageTransitionsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the admissions API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sams_admissions_requests_total",
			Help: "Total number of admissions API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sams_admissions_latency_seconds",
			Help:    "Latency distribution for admissions API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sams_admissions_errors_total",
			Help: "Total number of error responses returned by admissions endpoints.",
		}, []string{"method", "route", "status"})

		stageTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sams_admissions_stage_transitions_total",
			Help: "Total number of application status transitions, by edge.",
		}, []string{"from", "to"})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, stageTransitionsTotal)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// StageTransitions exposes the counter for pipeline status transitions.
func StageTransitions() *prometheus.CounterVec {
	RegisterMetrics()
	return stageTransitionsTotal
}
