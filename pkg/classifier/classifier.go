// Package classifier predicts the stimulus condition of an unseen
// temporal graph sequence by scoring its detected communities against
// trained co-membership references.
package classifier

import (
	"fmt"
	"sync"

	"github.com/dd0wney/neurograph/pkg/comembership"
	"github.com/dd0wney/neurograph/pkg/community"
	"github.com/dd0wney/neurograph/pkg/dataset"
	"github.com/dd0wney/neurograph/pkg/parallel"
)

// ErrShapeMismatch is returned when a sequence disagrees with the
// trained vertex or timestep counts.
var ErrShapeMismatch = fmt.Errorf("sequence shape mismatch against trained references")

// Classifier scores unseen sequences against one trained ReferenceSet.
// Prediction is a pure function of its inputs: the references are read
// only and a given sequence always yields the same label.
type Classifier struct {
	refs     *comembership.ReferenceSet
	detector community.Detector
	k        int // number of leading timesteps scored
	tieLabel dataset.Label
	workers  int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithScoreTimesteps sets K, the number of leading timesteps scored per
// sequence. The default is half the trained timesteps, rounded down,
// with a minimum of one. Training aggregates references across all
// timesteps whether or not classification consumes them; K is policy,
// not a structural constant.
func WithScoreTimesteps(k int) Option {
	return func(c *Classifier) { c.k = k }
}

// WithTieLabel sets the label returned when both class scores are
// exactly equal. Ties are a deliberate policy decision: the default is
// the first label of the trained pair.
func WithTieLabel(l dataset.Label) Option {
	return func(c *Classifier) { c.tieLabel = l }
}

// WithWorkers bounds the fan-out of PredictBatch; zero or less uses all
// CPUs.
func WithWorkers(workers int) Option {
	return func(c *Classifier) { c.workers = workers }
}

// New builds a classifier over a trained reference set.
func New(refs *comembership.ReferenceSet, det community.Detector, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		refs:     refs,
		detector: det,
		k:        refs.Timesteps() / 2,
		tieLabel: refs.Labels()[0],
	}
	if c.k < 1 {
		c.k = 1
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.k < 1 || c.k > refs.Timesteps() {
		return nil, fmt.Errorf("score timesteps %d outside [1,%d]", c.k, refs.Timesteps())
	}
	if !refs.Labels().Contains(c.tieLabel) {
		return nil, fmt.Errorf("tie label %q not in trained pair %q/%q", c.tieLabel, refs.Labels()[0], refs.Labels()[1])
	}
	return c, nil
}

// ScoreTimesteps returns K.
func (c *Classifier) ScoreTimesteps() int {
	return c.k
}

// Workers returns the configured fan-out bound for batch prediction.
func (c *Classifier) Workers() int {
	return c.workers
}

// Scores accumulates, over the first K timesteps, the reference weight
// of every within-community vertex pair for each class. Returned in
// label-pair order.
func (c *Classifier) Scores(seq *dataset.Sequence) ([2]float64, error) {
	var scores [2]float64

	if seq.Timesteps() != c.refs.Timesteps() {
		return scores, fmt.Errorf("%w: sequence has %d timesteps, trained with %d", ErrShapeMismatch, seq.Timesteps(), c.refs.Timesteps())
	}

	labels := c.refs.Labels()
	for t := 0; t < c.k; t++ {
		g := seq.Graphs[t]
		if g.VertexCount() != c.refs.VertexCount() {
			return scores, fmt.Errorf("%w: timestep %d has %d vertices, trained with %d",
				ErrShapeMismatch, t, g.VertexCount(), c.refs.VertexCount())
		}

		p, err := c.detector.Partition(g)
		if err != nil {
			return scores, fmt.Errorf("detect timestep %d: %w", t, err)
		}

		for i, label := range labels {
			ref, err := c.refs.Reference(label, t)
			if err != nil {
				return scores, err
			}
			for _, comm := range p {
				for x := 0; x < len(comm); x++ {
					for y := x + 1; y < len(comm); y++ {
						scores[i] += ref.Weight(comm[x], comm[y])
					}
				}
			}
		}
	}

	return scores, nil
}

// Label maps a score pair to the predicted label under the tie policy:
// the higher score wins, equal scores resolve to the configured tie
// label.
func (c *Classifier) Label(scores [2]float64) dataset.Label {
	labels := c.refs.Labels()
	switch {
	case scores[0] > scores[1]:
		return labels[0]
	case scores[1] > scores[0]:
		return labels[1]
	default:
		return c.tieLabel
	}
}

// Predict classifies one sequence.
func (c *Classifier) Predict(seq *dataset.Sequence) (dataset.Label, error) {
	scores, err := c.Scores(seq)
	if err != nil {
		return "", err
	}
	return c.Label(scores), nil
}

// PredictBatch classifies many sequences data-parallel. Each call only
// reads the shared immutable references, so sequences need no
// coordination beyond collecting results. Returns predictions in input
// order, or the first error encountered.
func (c *Classifier) PredictBatch(seqs []*dataset.Sequence) ([]dataset.Label, error) {
	out := make([]dataset.Label, len(seqs))

	var mu sync.Mutex
	var firstErr error

	parallel.ForEach(len(seqs), c.workers, func(i int) {
		label, err := c.Predict(seqs[i])
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
