package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/neurograph/pkg/community"
	"github.com/dd0wney/neurograph/pkg/graph"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.DetectionRunsTotal == nil {
		t.Error("DetectionRunsTotal not initialized")
	}
	if r.DetectionDuration == nil {
		t.Error("DetectionDuration not initialized")
	}
	if r.TrainingRunsTotal == nil {
		t.Error("TrainingRunsTotal not initialized")
	}
	if r.ClassificationsTotal == nil {
		t.Error("ClassificationsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordDetection(t *testing.T) {
	r := NewRegistry()

	r.RecordDetection("greedy-modularity", 4, 10*time.Millisecond, nil)
	r.RecordDetection("greedy-modularity", 3, 5*time.Millisecond, nil)

	counter, err := r.DetectionRunsTotal.GetMetricWithLabelValues("greedy-modularity", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 ok detections, got %g", got)
	}
}

func TestRecordClassification(t *testing.T) {
	r := NewRegistry()

	r.RecordClassification("movie", time.Millisecond, nil)
	r.RecordClassification("movie", time.Millisecond, nil)
	r.RecordClassification("story", time.Millisecond, nil)

	counter, err := r.ClassificationsTotal.GetMetricWithLabelValues("movie", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 movie classifications, got %g", got)
	}
}

func TestRecordTie(t *testing.T) {
	r := NewRegistry()

	r.RecordTie()
	r.RecordTie()

	var metric dto.Metric
	if err := r.ClassificationTiesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 ties, got %g", got)
	}
}

func TestInstrumentDetector(t *testing.T) {
	r := NewRegistry()
	det := InstrumentDetector(community.NewGreedyModularity(), r)

	if det.Name() != "greedy-modularity" {
		t.Errorf("Wrapper changed the detector name: %q", det.Name())
	}

	g, err := graph.FromEdges(4, []graph.Edge{{U: 0, V: 1, Weight: 1}})
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if err := p.Validate(4); err != nil {
		t.Errorf("Wrapper corrupted the partition: %v", err)
	}

	counter, err := r.DetectionRunsTotal.GetMetricWithLabelValues("greedy-modularity", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("Expected 1 recorded detection, got %g", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	if r.Handler() == nil {
		t.Error("Handler() returned nil")
	}
}
