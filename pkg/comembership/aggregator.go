// Package comembership reduces detected community partitions across a
// training class into per-timestep reference graphs whose edge weights
// estimate how often two vertices share a community.
package comembership

import (
	"fmt"
	"sync"

	"github.com/dd0wney/neurograph/pkg/community"
	"github.com/dd0wney/neurograph/pkg/dataset"
	"github.com/dd0wney/neurograph/pkg/graph"
	"github.com/dd0wney/neurograph/pkg/logging"
	"github.com/dd0wney/neurograph/pkg/parallel"
)

// ErrInsufficientData is returned when zero training sequences are
// available for a class/timestep combination. Aggregation never
// defaults missing classes to zero weights: a silent default would
// bias classification invisibly.
var ErrInsufficientData = fmt.Errorf("insufficient training data")

// Aggregator builds co-membership reference graphs from labeled
// training sequences. The zero value is not usable; set Detector.
type Aggregator struct {
	// Detector partitions each training graph.
	Detector community.Detector
	// Workers bounds the detection fan-out; zero or less uses all CPUs.
	Workers int
	// Logger receives per-timestep progress; nil disables logging.
	Logger logging.Logger
}

// Aggregate runs community detection on the timestep-th graph of every
// sequence and returns the reference graph whose weight(u,v) is the
// fraction of sequences in which u and v fell into the same community.
// All weights lie in [0,1].
//
// Detection runs data-parallel across sequences. Each worker chunk
// accumulates into its own local counter table; tables are merged in a
// reduction step, so no counters are shared between workers.
func (a *Aggregator) Aggregate(seqs []*dataset.Sequence, timestep int) (*graph.Graph, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("%w: no sequences for timestep %d", ErrInsufficientData, timestep)
	}
	for _, s := range seqs {
		if timestep < 0 || timestep >= s.Timesteps() {
			return nil, fmt.Errorf("timestep %d outside [0,%d) for subject %s", timestep, s.Timesteps(), s.Subject)
		}
	}

	n := seqs[0].Graphs[timestep].VertexCount()
	counts := newTable(n)

	var mu sync.Mutex
	var firstErr error

	parallel.ForEachChunk(len(seqs), a.Workers, func(start, end int) {
		local := newTable(n)

		for i := start; i < end; i++ {
			p, err := a.Detector.Partition(seqs[i].Graphs[timestep])
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("detect subject %s timestep %d: %w", seqs[i].Subject, timestep, err)
				}
				mu.Unlock()
				return
			}
			for _, comm := range p {
				// Community members are sorted ascending, so (a,b)
				// indexes the upper triangle directly.
				for x := 0; x < len(comm); x++ {
					for y := x + 1; y < len(comm); y++ {
						local[comm[x]][comm[y]]++
					}
				}
			}
		}

		mu.Lock()
		addTable(counts, local)
		mu.Unlock()
	})

	if firstErr != nil {
		return nil, firstErr
	}

	// Normalize counts into empirical co-membership frequencies.
	total := float64(len(seqs))
	weights := make([][]float64, n)
	for u := range weights {
		weights[u] = make([]float64, n)
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			w := counts[u][v] / total
			weights[u][v] = w
			weights[v][u] = w
		}
	}

	return graph.New(weights)
}

// AggregateClass builds the ordered per-timestep reference collection
// for one class.
func (a *Aggregator) AggregateClass(seqs []*dataset.Sequence, timesteps int) ([]*graph.Graph, error) {
	refs := make([]*graph.Graph, timesteps)
	for t := 0; t < timesteps; t++ {
		ref, err := a.Aggregate(seqs, t)
		if err != nil {
			return nil, err
		}
		refs[t] = ref
	}
	return refs, nil
}

// BuildReferences trains one ReferenceSet from a dataset: one reference
// graph per class per timestep. The returned set is built fresh and
// never mutated afterwards, so it can be shared read-only by any number
// of concurrent classification calls.
func (a *Aggregator) BuildReferences(train *dataset.Dataset) (*ReferenceSet, error) {
	rs := &ReferenceSet{
		labels: train.Labels,
		n:      train.VertexCount(),
		t:      train.Timesteps(),
	}

	for i, label := range train.Labels {
		seqs := train.ByLabel(label)
		if len(seqs) == 0 {
			return nil, fmt.Errorf("%w: class %q has no training sequences", ErrInsufficientData, label)
		}

		refs, err := a.AggregateClass(seqs, train.Timesteps())
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", label, err)
		}
		rs.refs[i] = refs

		if a.Logger != nil {
			a.Logger.Info("aggregated class references",
				logging.String("class", string(label)),
				logging.Int("sequences", len(seqs)),
				logging.Int("timesteps", train.Timesteps()))
		}
	}

	return rs, nil
}

func newTable(n int) [][]float64 {
	t := make([][]float64, n)
	for i := range t {
		t[i] = make([]float64, n)
	}
	return t
}

func addTable(dst, src [][]float64) {
	for u := range src {
		for v := u + 1; v < len(src); v++ {
			dst[u][v] += src[u][v]
		}
	}
}
