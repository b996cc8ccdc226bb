// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmer_queries_processed_total",
			Help: "Total number of farmer queries processed",
		},
		[]string{"response_type", "language"},
	)

	QueriesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmer_queries_failed_total",
			Help: "Total number of farmer queries that failed",
		},
		[]string{"error_code"},
	)

	ComposeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "advisor_compose_duration_seconds",
			Help: "Duration of advisory response composition in seconds",
		},
		[]string{"response_type"},
	)

	ClassifierCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vision_classifier_calls_total",
			Help: "Total number of image classifier invocations",
		},
		[]string{"outcome"},
	)
)
