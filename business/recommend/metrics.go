package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_pages_served_total",
			Help: "Count of recommendation pages served by user_type and ai_powered.",
		},
		[]string{"user_type", "ai_powered"},
	)

	ExternalRecommenderErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_external_errors_total",
			Help: "Count of external AI recommender failures that triggered local fallback.",
		},
	)

	SearchLogFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_search_log_failures_total",
			Help: "Count of fire-and-forget search log writes that failed.",
		},
	)

	PanicRecoveriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_panic_recoveries_total",
			Help: "Count of pipeline panics recovered into the local fallback path.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendServedTotal,
		ExternalRecommenderErrorsTotal,
		SearchLogFailuresTotal,
		PanicRecoveriesTotal,
	)
}
