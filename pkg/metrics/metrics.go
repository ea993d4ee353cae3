package metrics

import (
	"time"
)

// RecordDetection records one community detection run.
func (r *Registry) RecordDetection(algorithm string, communities int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.DetectionRunsTotal.WithLabelValues(algorithm, status).Inc()
	if err == nil {
		r.DetectionDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
		r.DetectionCommunities.WithLabelValues(algorithm).Observe(float64(communities))
	}
}

// RecordTraining records one reference-building run.
func (r *Registry) RecordTraining(duration time.Duration, timesteps int, sequencesByClass map[string]int) {
	r.TrainingRunsTotal.Inc()
	r.TrainingDuration.Observe(duration.Seconds())
	r.ReferenceTimesteps.Set(float64(timesteps))
	for class, count := range sequencesByClass {
		r.TrainingSequences.WithLabelValues(class).Set(float64(count))
	}
}

// RecordClassification records one sequence classification.
func (r *Registry) RecordClassification(predicted string, duration time.Duration, err error) {
	if err != nil {
		r.ClassificationsTotal.WithLabelValues("", "error").Inc()
		return
	}
	r.ClassificationsTotal.WithLabelValues(predicted, "ok").Inc()
	r.ClassificationDuration.Observe(duration.Seconds())
}

// RecordTie records a classification that fell back to the tie label.
func (r *Registry) RecordTie() {
	r.ClassificationTiesTotal.Inc()
}
