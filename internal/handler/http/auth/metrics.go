package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsportal_auth_requests_total",
			Help: "Authentication attempts by result.",
		},
		[]string{"result"},
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsportal_auth_duration_seconds",
			Help:    "Authentication handling duration.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func recordAuth(result string, seconds float64) {
	authRequests.WithLabelValues(result).Inc()
	authDuration.Observe(seconds)
}
