// Package metrics provides the centralized Prometheus registry for the
// prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "predictions_scored_total",
		Help:      "Total number of fixtures scored",
	})
	ScoringAnomaliesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "scoring_anomalies_total",
		Help:      "Total number of non-finite scoring intermediates replaced by the neutral fallback",
	})
	ResolverMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "resolver_misses_total",
		Help:      "Total number of team names that resolved to no candidate",
	})
	BacktestFixturesEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "backtest_fixtures_evaluated_total",
		Help:      "Total number of fixtures evaluated by the calibration harness",
	})
	BacktestFixturesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "backtest_fixtures_skipped_total",
		Help:      "Total number of fixtures skipped for insufficient prior history",
	})
	MatchesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "matches_ingested_total",
		Help:      "Total number of match records ingested",
	})
	IngestionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchodds",
		Name:      "ingestion_errors_total",
		Help:      "Total number of ingestion errors",
	})
)

// Gauge metrics
var (
	LastIngestedMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchodds",
		Name:      "last_ingested_matches",
		Help:      "Match count of the most recent ingestion run",
	})
	SnapshotCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchodds",
		Name:      "snapshot_cache_size",
		Help:      "Number of provider snapshots currently cached",
	})
)

// Registry returns the process-wide registry, registering all metrics on
// first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			PredictionsScoredTotal,
			ScoringAnomaliesTotal,
			ResolverMissesTotal,
			BacktestFixturesEvaluated,
			BacktestFixturesSkipped,
			MatchesIngestedTotal,
			IngestionErrorsTotal,
			LastIngestedMatches,
			SnapshotCacheSize,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
