package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the vibe recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vibe_recommend_latency_seconds",
		Help:    "Latency of the vibe recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation pages served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vibe_recommend_requests_total",
		Help: "Total number of vibe recommend requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}
