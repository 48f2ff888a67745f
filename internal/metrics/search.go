package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "search_requests_total",
			Help:      "Total number of record searches by outcome",
		},
		[]string{"outcome"}, // "ok" / "empty_allowlist" / "invalid" / "store_error" / "index_error"
	)

	SearchPhaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "search_phase_duration_seconds",
			Help:      "Duration of search phases in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"phase"}, // "compile" / "allowlist" / "index"
	)

	SearchAllowListSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "search_allowlist_size",
			Help:      "Number of readable record ids per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	SearchAllowListTruncated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "search_allowlist_truncated_total",
			Help:      "Searches whose allow-list exceeded the configured maximum",
		},
	)

	SearchExtrasPredicates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "search_extras_predicates",
			Help:      "Number of extras predicates per search",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers Prometheus search metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchPhaseDuration)
		prometheus.MustRegister(SearchAllowListSize)
		prometheus.MustRegister(SearchAllowListTruncated)
		prometheus.MustRegister(SearchExtrasPredicates)
	})
}
