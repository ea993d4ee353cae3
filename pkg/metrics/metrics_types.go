// Package metrics exposes prometheus instrumentation for the training
// and classification pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Detection metrics
	DetectionRunsTotal   *prometheus.CounterVec
	DetectionDuration    *prometheus.HistogramVec
	DetectionCommunities *prometheus.HistogramVec

	// Training metrics
	TrainingRunsTotal  prometheus.Counter
	TrainingDuration   prometheus.Histogram
	TrainingSequences  *prometheus.GaugeVec
	ReferenceTimesteps prometheus.Gauge

	// Classification metrics
	ClassificationsTotal    *prometheus.CounterVec
	ClassificationDuration  prometheus.Histogram
	ClassificationTiesTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// NewRegistry creates a Registry with all metrics registered against a
// fresh prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initDetectionMetrics()
	r.initTrainingMetrics()
	r.initClassificationMetrics()

	return r
}

// DefaultRegistry returns the shared process-wide registry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Handler returns an http.Handler serving the registry in prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
