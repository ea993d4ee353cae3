package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initClassificationMetrics() {
	r.ClassificationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "neurograph_classifications_total",
			Help: "Total number of sequences classified",
		},
		[]string{"predicted", "status"}, // status: ok, error
	)

	r.ClassificationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neurograph_classification_duration_seconds",
			Help:    "Duration of one sequence classification in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.ClassificationTiesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "neurograph_classification_ties_total",
			Help: "Classifications where both class scores were exactly equal",
		},
	)
}
