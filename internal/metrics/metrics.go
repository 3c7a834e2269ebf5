package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	BackendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinefront_backend_requests_total",
			Help: "Count of requests sent to the catalog backend",
		},
		[]string{"method", "outcome"}, // outcome: ok, status, network, cancelled
	)
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinefront_backend_request_duration_seconds",
			Help:    "Time taken by catalog backend requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method"},
	)
	Searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinefront_searches_total",
			Help: "Count of search actions by criterion and final state",
		},
		[]string{"criterion", "state"},
	)
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinefront_submissions_total",
			Help: "Count of create actions by resource and final state",
		},
		[]string{"resource", "state"},
	)
	StaleResponses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cinefront_stale_responses_total",
			Help: "Responses discarded because a newer search was issued",
		},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinefront_http_requests_total",
			Help: "Count of HTTP requests served by status code",
		},
		[]string{"method", "code"},
	)
	BackendUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinefront_backend_up",
			Help: "1 if the last health check reached the catalog backend",
		},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BackendRequests,
			BackendRequestDuration,
			Searches,
			Submissions,
			StaleResponses,
			HTTPRequests,
			BackendUp,
		)
	})
}
