package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_lookups_total",
			Help: "Count of stored recommendation lookups by result (hit, miss, stale).",
		},
		[]string{"result"},
	)

	RecommendationGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_generated_total",
			Help: "Count of recommendation sets generated from fresh signals.",
		},
	)

	RecommendationInvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_invalidations_total",
			Help: "Count of recommendation invalidations by interaction kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationCacheLookupsTotal,
		RecommendationGeneratedTotal,
		RecommendationInvalidationsTotal,
	)
}
