package translator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records translation call metrics.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// RecordTranslation records one provider call with its outcome
	// ("success" or "failure") and duration.
	RecordTranslation(provider, result string, duration time.Duration)
}

var (
	translationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsportal_translations_total",
			Help: "Total number of translation provider calls",
		},
		[]string{"provider", "result"},
	)

	translationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsportal_translation_duration_seconds",
			Help:    "Translation provider call duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
)

// PrometheusMetrics records translation metrics to the default Prometheus registry.
type PrometheusMetrics struct{}

// NewPrometheusMetrics creates a Prometheus-backed metrics recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{}
}

// RecordTranslation implements MetricsRecorder.
func (m *PrometheusMetrics) RecordTranslation(provider, result string, duration time.Duration) {
	translationsTotal.WithLabelValues(provider, result).Inc()
	translationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// NoopMetrics discards all metrics. Used in tests.
type NoopMetrics struct{}

// RecordTranslation implements MetricsRecorder.
func (NoopMetrics) RecordTranslation(string, string, time.Duration) {}
