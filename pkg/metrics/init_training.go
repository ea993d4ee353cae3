package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTrainingMetrics() {
	r.TrainingRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "neurograph_training_runs_total",
			Help: "Total number of reference-building runs",
		},
	)

	r.TrainingDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neurograph_training_duration_seconds",
			Help:    "Duration of reference building in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	r.TrainingSequences = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "neurograph_training_sequences",
			Help: "Number of training sequences per class in the last run",
		},
		[]string{"class"},
	)

	r.ReferenceTimesteps = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "neurograph_reference_timesteps",
			Help: "Number of per-class reference graphs built in the last run",
		},
	)
}
