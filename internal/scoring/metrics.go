package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_compatibility_scores",
			Help:    "Distribution of computed compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	compatibilityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_compatibility_cache_hits_total",
			Help: "Pairwise score requests served from the stored score",
		},
	)

	matchMemoHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_match_memo_hits_total",
			Help: "Attribute match lookups served from the memo",
		},
	)

	qcsSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_qcs_sync_total",
			Help: "QCS profile sync outcomes",
		},
		[]string{"status"},
	)
)

func recordCompatibilityScore(score float64) {
	compatibilityScores.Observe(score)
}

func recordCompatibilityCacheHit() {
	compatibilityCacheHits.Inc()
}

func recordMemoHit() {
	matchMemoHits.Inc()
}

func recordQCSSync(status string) {
	qcsSyncTotal.WithLabelValues(status).Inc()
}
