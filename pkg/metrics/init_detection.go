package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectionMetrics() {
	r.DetectionRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "neurograph_detection_runs_total",
			Help: "Total number of community detection runs",
		},
		[]string{"algorithm", "status"}, // ok, error
	)

	r.DetectionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neurograph_detection_duration_seconds",
			Help:    "Duration of one community detection run in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"algorithm"},
	)

	r.DetectionCommunities = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neurograph_detection_communities",
			Help:    "Number of communities found per detection run",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		},
		[]string{"algorithm"},
	)
}
