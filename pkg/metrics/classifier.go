package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/dd0wney/neurograph/pkg/classifier"
	"github.com/dd0wney/neurograph/pkg/dataset"
	"github.com/dd0wney/neurograph/pkg/parallel"
)

// InstrumentedClassifier wraps a Classifier and records every
// prediction in a registry: outcome counters, latency, and tie
// fallbacks.
type InstrumentedClassifier struct {
	inner    *classifier.Classifier
	registry *Registry
}

// InstrumentClassifier wraps c so that every prediction is recorded.
// The wrapper preserves the inner classifier's determinism.
func InstrumentClassifier(c *classifier.Classifier, r *Registry) *InstrumentedClassifier {
	return &InstrumentedClassifier{inner: c, registry: r}
}

// Predict classifies one sequence and records the outcome.
func (ic *InstrumentedClassifier) Predict(seq *dataset.Sequence) (dataset.Label, error) {
	start := time.Now()

	scores, err := ic.inner.Scores(seq)
	if err != nil {
		ic.registry.RecordClassification("", time.Since(start), err)
		return "", err
	}
	if scores[0] == scores[1] {
		ic.registry.RecordTie()
	}

	label := ic.inner.Label(scores)
	ic.registry.RecordClassification(string(label), time.Since(start), nil)
	return label, nil
}

// PredictBatch classifies many sequences data-parallel, recording each
// prediction. Returns predictions in input order, or the first error
// encountered.
func (ic *InstrumentedClassifier) PredictBatch(seqs []*dataset.Sequence) ([]dataset.Label, error) {
	out := make([]dataset.Label, len(seqs))

	var mu sync.Mutex
	var firstErr error

	parallel.ForEach(len(seqs), ic.inner.Workers(), func(i int) {
		label, err := ic.Predict(seqs[i])
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("subject %s: %w", seqs[i].Subject, err)
			}
			mu.Unlock()
			return
		}
		out[i] = label
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
