package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every livio metric.
const Namespace = "livio"

// Matching and encoding Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "match_requests_total",
			Help:      "Total number of ranking requests",
		},
		[]string{"status"}, // "ok" / "no_matches" / "invalid" / "error"
	)

	MatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "match_duration_seconds",
			Help:      "Ranking duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	MatchSeeds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "match_seeds",
			Help:      "Number of distinct seed profiles per request",
			Buckets:   []float64{1, 2, 3, 5, 8, 16, 32},
		},
	)

	EncodingRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "encoding_runs_total",
			Help:      "Feature matrix builds by outcome",
		},
		[]string{"result"}, // "cached" / "encoded" / "error"
	)

	MatrixCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "matrix_cache_total",
			Help:      "Persisted feature matrix hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "stale"
	)

	MatrixRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "matrix_rows",
			Help:      "Profiles in the published feature matrix",
		},
	)

	MatrixCols = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "matrix_columns",
			Help:      "Feature columns in the published feature matrix",
		},
	)

	CatalogRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_refresh_total",
			Help:      "Catalog snapshot loads by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var registerOnce sync.Once

// RegisterMatchMetrics registers matching and encoding metrics. Safe to call more than once.
func RegisterMatchMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MatchRequestsTotal,
			MatchDuration,
			MatchSeeds,
			EncodingRunsTotal,
			MatrixCacheTotal,
			MatrixRows,
			MatrixCols,
			CatalogRefreshTotal,
		)
	})
}
