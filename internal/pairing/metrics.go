package pairing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairing_feed_requests_total",
			Help: "Pairing feed requests by outcome",
		},
		[]string{"status"},
	)

	feedSizes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pairing_feed_candidates",
			Help:    "Candidates returned per feed request",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	usagePersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pairing_usage_persist_failures_total",
			Help: "Daily usage increments that failed to persist",
		},
	)
)

func recordFeedRequest(status string) {
	feedRequestsTotal.WithLabelValues(status).Inc()
}

func recordFeedSize(count int) {
	feedSizes.Observe(float64(count))
}

func recordUsagePersistFailure() {
	usagePersistFailures.Inc()
}
