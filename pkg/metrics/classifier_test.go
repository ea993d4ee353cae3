package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/neurograph/pkg/classifier"
	"github.com/dd0wney/neurograph/pkg/comembership"
	"github.com/dd0wney/neurograph/pkg/community"
	"github.com/dd0wney/neurograph/pkg/dataset"
	"github.com/dd0wney/neurograph/pkg/graph"
)

// edgeSequence builds a sequence of identical 4-vertex graphs from an
// edge list.
func edgeSequence(t *testing.T, subject string, label dataset.Label, timesteps int, edges []graph.Edge) *dataset.Sequence {
	t.Helper()

	graphs := make([]*graph.Graph, timesteps)
	for i := range graphs {
		g, err := graph.FromEdges(4, edges)
		if err != nil {
			t.Fatalf("Failed to build graph: %v", err)
		}
		graphs[i] = g
	}
	return &dataset.Sequence{Subject: subject, Label: label, Graphs: graphs}
}

// trainedClassifier builds a classifier over the given per-class edge
// patterns.
func trainedClassifier(t *testing.T, patternA, patternB []graph.Edge) *classifier.Classifier {
	t.Helper()

	ds, err := dataset.New(dataset.LabelPair{"A", "B"}, []*dataset.Sequence{
		edgeSequence(t, "a1", "A", 2, patternA),
		edgeSequence(t, "b1", "B", 2, patternB),
	})
	if err != nil {
		t.Fatalf("Failed to build dataset: %v", err)
	}

	agg := &comembership.Aggregator{Detector: community.NewGreedyModularity()}
	refs, err := agg.BuildReferences(ds)
	if err != nil {
		t.Fatalf("BuildReferences failed: %v", err)
	}

	c, err := classifier.New(refs, community.NewGreedyModularity(), classifier.WithScoreTimesteps(2))
	if err != nil {
		t.Fatalf("Failed to build classifier: %v", err)
	}
	return c
}

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()

	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func TestInstrumentClassifier(t *testing.T) {
	r := NewRegistry()

	patternA := []graph.Edge{{U: 0, V: 1, Weight: 1}, {U: 2, V: 3, Weight: 1}}
	patternB := []graph.Edge{{U: 0, V: 2, Weight: 1}, {U: 1, V: 3, Weight: 1}}
	ic := InstrumentClassifier(trainedClassifier(t, patternA, patternB), r)

	label, err := ic.Predict(edgeSequence(t, "heldout", "A", 2, patternA))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if label != "A" {
		t.Errorf("Wrapper changed the prediction: %q", label)
	}

	counter, err := r.ClassificationsTotal.GetMetricWithLabelValues("A", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 1 {
		t.Errorf("Expected 1 recorded classification, got %g", got)
	}
	if got := counterValue(t, r.ClassificationTiesTotal); got != 0 {
		t.Errorf("Expected no recorded ties, got %g", got)
	}
}

func TestInstrumentClassifier_RecordsTies(t *testing.T) {
	r := NewRegistry()

	// Identical training patterns for both classes force equal scores.
	pattern := []graph.Edge{{U: 0, V: 1, Weight: 1}, {U: 2, V: 3, Weight: 1}}
	ic := InstrumentClassifier(trainedClassifier(t, pattern, pattern), r)

	label, err := ic.Predict(edgeSequence(t, "heldout", "A", 2, pattern))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if label != "A" {
		t.Errorf("Expected tie to resolve to the first label, got %q", label)
	}
	if got := counterValue(t, r.ClassificationTiesTotal); got != 1 {
		t.Errorf("Expected 1 recorded tie, got %g", got)
	}
}

func TestInstrumentClassifier_PredictBatch(t *testing.T) {
	r := NewRegistry()

	patternA := []graph.Edge{{U: 0, V: 1, Weight: 1}, {U: 2, V: 3, Weight: 1}}
	patternB := []graph.Edge{{U: 0, V: 2, Weight: 1}, {U: 1, V: 3, Weight: 1}}
	ic := InstrumentClassifier(trainedClassifier(t, patternA, patternB), r)

	got, err := ic.PredictBatch([]*dataset.Sequence{
		edgeSequence(t, "h1", "A", 2, patternA),
		edgeSequence(t, "h2", "B", 2, patternB),
	})
	if err != nil {
		t.Fatalf("PredictBatch failed: %v", err)
	}
	want := []dataset.Label{"A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sequence %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	for _, label := range []string{"A", "B"} {
		counter, err := r.ClassificationsTotal.GetMetricWithLabelValues(label, "ok")
		if err != nil {
			t.Fatalf("Failed to get metric: %v", err)
		}
		if got := counterValue(t, counter); got != 1 {
			t.Errorf("Expected 1 recorded %s classification, got %g", label, got)
		}
	}
}
