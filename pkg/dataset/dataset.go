// Package dataset holds labeled temporal graph sequences and the
// deterministic train/eval partitioning used ahead of training.
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// ErrEmptyDataset is returned when a dataset or split ends up with no
// sequences.
var ErrEmptyDataset = fmt.Errorf("dataset contains no sequences")

// ErrInconsistentShape is returned when sequences disagree on vertex
// count or timestep count, or carry a label outside the label pair.
var ErrInconsistentShape = fmt.Errorf("inconsistent dataset shape")

// Label is one of the two stimulus condition names.
type Label string

// LabelPair is the fixed two-element label set of a classification
// task, e.g. {"movie", "story"}.
type LabelPair [2]Label

// Contains reports whether l is one of the pair.
func (lp LabelPair) Contains(l Label) bool {
	return l == lp[0] || l == lp[1]
}

// Sequence is one subject's ordered connectivity graphs across the
// recording windows, tagged with the stimulus condition.
type Sequence struct {
	Subject string
	Label   Label
	Graphs  []*graph.Graph
}

// Timesteps returns the number of graphs in the sequence.
func (s *Sequence) Timesteps() int {
	return len(s.Graphs)
}

// Dataset is a collection of labeled sequences sharing one vertex count
// and one timestep count.
type Dataset struct {
	Labels    LabelPair
	Sequences []*Sequence

	n, t int
}

// New validates that every sequence has the same vertex count and
// timestep count and a label from the pair, and wraps them in a
// Dataset.
func New(labels LabelPair, seqs []*Sequence) (*Dataset, error) {
	if len(seqs) == 0 {
		return nil, ErrEmptyDataset
	}
	if labels[0] == labels[1] {
		return nil, fmt.Errorf("%w: label pair %q/%q is not distinct", ErrInconsistentShape, labels[0], labels[1])
	}

	t := seqs[0].Timesteps()
	if t == 0 {
		return nil, fmt.Errorf("%w: subject %s has no graphs", ErrInconsistentShape, seqs[0].Subject)
	}
	n := seqs[0].Graphs[0].VertexCount()
	for _, s := range seqs {
		if !labels.Contains(s.Label) {
			return nil, fmt.Errorf("%w: subject %s has label %q outside pair %q/%q",
				ErrInconsistentShape, s.Subject, s.Label, labels[0], labels[1])
		}
		if s.Timesteps() != t {
			return nil, fmt.Errorf("%w: subject %s has %d timesteps, want %d",
				ErrInconsistentShape, s.Subject, s.Timesteps(), t)
		}
		for i, g := range s.Graphs {
			if g.VertexCount() != n {
				return nil, fmt.Errorf("%w: subject %s timestep %d has %d vertices, want %d",
					ErrInconsistentShape, s.Subject, i, g.VertexCount(), n)
			}
		}
	}

	return &Dataset{Labels: labels, Sequences: seqs, n: n, t: t}, nil
}

// VertexCount returns N, shared by every graph in the dataset.
func (d *Dataset) VertexCount() int {
	return d.n
}

// Timesteps returns T, shared by every sequence in the dataset.
func (d *Dataset) Timesteps() int {
	return d.t
}

// ByLabel returns the sequences carrying the given label, in dataset
// order.
func (d *Dataset) ByLabel(l Label) []*Sequence {
	var out []*Sequence
	for _, s := range d.Sequences {
		if s.Label == l {
			out = append(out, s)
		}
	}
	return out
}

// Split shuffles the sequences with the given seed and partitions them
// into a training set of round(trainFrac * len) sequences and an
// evaluation set of the rest. The same seed always produces the same
// split; the receiver is not modified.
func (d *Dataset) Split(seed int64, trainFrac float64) (train, eval *Dataset, err error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, nil, fmt.Errorf("train fraction %g outside (0,1)", trainFrac)
	}

	shuffled := append([]*Sequence(nil), d.Sequences...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(trainFrac*float64(len(shuffled)) + 0.5)
	if cut == 0 || cut == len(shuffled) {
		return nil, nil, fmt.Errorf("%w: split %g of %d sequences leaves one side empty",
			ErrEmptyDataset, trainFrac, len(shuffled))
	}

	train, err = New(d.Labels, shuffled[:cut])
	if err != nil {
		return nil, nil, err
	}
	eval, err = New(d.Labels, shuffled[cut:])
	if err != nil {
		return nil, nil, err
	}
	return train, eval, nil
}
