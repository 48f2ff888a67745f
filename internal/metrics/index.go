package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Index engine Prometheus metrics.
var (
	IndexRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "index_requests_total",
			Help:      "Total number of index engine requests",
		},
		[]string{"op", "status"}, // op: "search" / "index_record" / "ensure_index" / "ping"; status: "success" / "error"
	)

	IndexRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "index_request_duration_seconds",
			Help:      "Duration of index engine requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	IndexErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "index_errors_total",
			Help:      "Total number of index engine errors by type",
		},
		[]string{"op", "error_type"}, // "transport" / "status" / "decode"
	)
)

var registerIndexOnce sync.Once

// RegisterIndexMetrics registers Prometheus index engine metrics. Safe to call more than once.
func RegisterIndexMetrics() {
	registerIndexOnce.Do(func() {
		prometheus.MustRegister(IndexRequestsTotal)
		prometheus.MustRegister(IndexRequestDuration)
		prometheus.MustRegister(IndexErrorsTotal)
	})
}
