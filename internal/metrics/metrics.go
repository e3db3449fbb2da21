// Package metrics exposes Prometheus instrumentation for payload scoring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsScoredTotal counts documents scored by a payload distance script
	DocumentsScoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payload_distance_documents_scored_total",
			Help: "Total number of documents scored by a payload distance script",
		},
		[]string{"strategy"},
	)

	// BaseScoreFallbacksTotal counts documents whose base score was replaced by the fallback constant
	BaseScoreFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payload_distance_base_score_fallbacks_total",
			Help: "Total number of base score lookups that failed and used the fallback score",
		},
		[]string{"strategy"},
	)

	// ScriptErrorsTotal counts rejected script configurations
	ScriptErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payload_distance_script_errors_total",
			Help: "Total number of search requests rejected because of an invalid script",
		},
	)

	// SearchLatencySeconds tracks search latency per index
	SearchLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payload_distance_search_latency_seconds",
			Help:    "Latency of search requests by index",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"index"},
	)
)
