// Package metrics holds the Prometheus collectors for query processing.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "queries_total",
			Help:      "Total number of processed queries",
		},
		[]string{"mode", "status"}, // mode: retrieve/count, status: ok/empty/error
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sift",
			Name:      "query_stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"stage"}, // preprocess, match, postprocess, postfilter
	)

	ResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sift",
			Name:      "results_returned",
			Help:      "Result set sizes returned to the formatter",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)
)

// Register registers the query metrics explicitly (no init()).
func Register() {
	prometheus.MustRegister(
		QueriesTotal,
		StageDuration,
		ResultsReturned,
	)
}
