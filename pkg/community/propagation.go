package community

import (
	"sort"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// DefaultPropagationIterations caps the label propagation sweeps when
// the labels do not converge earlier.
const DefaultPropagationIterations = 100

// LabelPropagation detects communities by iteratively adopting the
// label carrying the most neighboring edge weight. Faster than greedy
// modularity maximization but typically coarser; offered as an
// alternative Detector for large vertex sets.
//
// Sweeps visit vertices in fixed ascending order and label ties resolve
// to the smallest label, so the result is deterministic.
type LabelPropagation struct {
	// MaxIterations bounds the number of sweeps; zero means
	// DefaultPropagationIterations.
	MaxIterations int
}

// NewLabelPropagation creates a detector with the default iteration cap.
func NewLabelPropagation() *LabelPropagation {
	return &LabelPropagation{MaxIterations: DefaultPropagationIterations}
}

// Name implements Detector.
func (d *LabelPropagation) Name() string {
	return "label-propagation"
}

// Partition implements Detector.
func (d *LabelPropagation) Partition(g *graph.Graph) (Partition, error) {
	n := g.VertexCount()
	maxIter := d.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultPropagationIterations
	}

	// Each vertex starts with its own label.
	labels := make([]int, n)
	for v := range labels {
		labels[v] = v
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false

		for u := 0; u < n; u++ {
			// Weighted label mass over the neighborhood.
			mass := make(map[int]float64)
			for _, v := range g.Neighbors(u) {
				mass[labels[v]] += g.Weight(u, v)
			}
			if len(mass) == 0 {
				continue // isolated vertex keeps its own label
			}

			// Scan candidate labels in ascending order so equal mass
			// resolves to the smallest label.
			cands := make([]int, 0, len(mass))
			for l := range mass {
				cands = append(cands, l)
			}
			sort.Ints(cands)

			best := cands[0]
			for _, l := range cands[1:] {
				if mass[l] > mass[best] {
					best = l
				}
			}

			if best != labels[u] {
				labels[u] = best
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	// Group vertices by final label.
	groups := make(map[int][]int)
	for v, l := range labels {
		groups[l] = append(groups[l], v)
	}

	p := make(Partition, 0, len(groups))
	for _, comm := range groups {
		sort.Ints(comm)
		p = append(p, comm)
	}
	sort.Slice(p, func(i, j int) bool { return p[i][0] < p[j][0] })
	return p, nil
}
