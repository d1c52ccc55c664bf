// Package metrics defines Prometheus collectors for the publishing pipeline.
// HTTP-level metrics live in the handler layer; this package covers the
// translation and content side.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TranslationsDerivedTotal counts whole-item derivation attempts by
	// outcome. Per-call provider counters live in the translator package.
	TranslationsDerivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsportal_translations_derived_total",
			Help: "Automatic translation derivations by result.",
		},
		[]string{"result"},
	)

	// TranslationDuration tracks how long a full derivation (all fields of
	// one news item) takes. Per-call provider durations are recorded in the
	// translator package.
	TranslationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsportal_translation_sync_duration_seconds",
			Help:    "Time spent deriving the paired translation of a news item.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// NewsTotal is the number of news items currently stored.
	NewsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsportal_news_total",
			Help: "Total number of stored news items.",
		},
	)

	// NewsIncomplete is the number of items whose paired translation is
	// still pending or failed. The reconciliation worker refreshes it.
	NewsIncomplete = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsportal_news_incomplete_total",
			Help: "News items without a complete translation pair.",
		},
	)

	// ReconcileRunsTotal counts reconciliation sweeps by result.
	ReconcileRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsportal_reconcile_runs_total",
			Help: "Reconciliation worker sweeps by result.",
		},
		[]string{"result"},
	)
)
