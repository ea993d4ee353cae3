// Package evaluation compares classifier predictions against ground
// truth and renders the standard classification metrics.
package evaluation

import (
	"fmt"

	"github.com/dd0wney/neurograph/pkg/dataset"
)

// Predictor classifies batches of sequences. Both *classifier.Classifier
// and its metrics-instrumented wrapper satisfy it.
type Predictor interface {
	PredictBatch(seqs []*dataset.Sequence) ([]dataset.Label, error)
}

// Report holds the 2x2 confusion matrix of one evaluation run.
// Confusion[a][p] counts sequences with actual class a predicted as p,
// indexed in label-pair order.
type Report struct {
	Labels    dataset.LabelPair
	Confusion [2][2]int
}

// Evaluate classifies every sequence and tallies predictions against
// the labels the sequences carry.
func Evaluate(c Predictor, labels dataset.LabelPair, seqs []*dataset.Sequence) (*Report, error) {
	r := &Report{Labels: labels}

	predictions, err := c.PredictBatch(seqs)
	if err != nil {
		return nil, err
	}

	for i, seq := range seqs {
		a, ok := labelIndex(labels, seq.Label)
		if !ok {
			return nil, fmt.Errorf("sequence %s carries label %q outside pair %q/%q",
				seq.Subject, seq.Label, labels[0], labels[1])
		}
		p, ok := labelIndex(labels, predictions[i])
		if !ok {
			return nil, fmt.Errorf("prediction %q outside pair %q/%q", predictions[i], labels[0], labels[1])
		}
		r.Confusion[a][p]++
	}

	return r, nil
}

func labelIndex(labels dataset.LabelPair, l dataset.Label) (int, bool) {
	for i, x := range labels {
		if x == l {
			return i, true
		}
	}
	return 0, false
}

// Total returns the number of evaluated sequences.
func (r *Report) Total() int {
	return r.Confusion[0][0] + r.Confusion[0][1] + r.Confusion[1][0] + r.Confusion[1][1]
}

// Accuracy returns the fraction of correct predictions, or 0 for an
// empty report.
func (r *Report) Accuracy() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Confusion[0][0]+r.Confusion[1][1]) / float64(total)
}

// Precision returns TP/(TP+FP) for a class, or 0 when the class was
// never predicted.
func (r *Report) Precision(l dataset.Label) float64 {
	i, ok := labelIndex(r.Labels, l)
	if !ok {
		return 0
	}
	predicted := r.Confusion[0][i] + r.Confusion[1][i]
	if predicted == 0 {
		return 0
	}
	return float64(r.Confusion[i][i]) / float64(predicted)
}

// Recall returns TP/(TP+FN) for a class, or 0 when the class has no
// evaluated sequences.
func (r *Report) Recall(l dataset.Label) float64 {
	i, ok := labelIndex(r.Labels, l)
	if !ok {
		return 0
	}
	actual := r.Confusion[i][0] + r.Confusion[i][1]
	if actual == 0 {
		return 0
	}
	return float64(r.Confusion[i][i]) / float64(actual)
}

// F1 returns the harmonic mean of precision and recall for a class.
func (r *Report) F1(l dataset.Label) float64 {
	p := r.Precision(l)
	rec := r.Recall(l)
	if p+rec == 0 {
		return 0
	}
	return 2 * p * rec / (p + rec)
}
