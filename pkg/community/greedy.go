package community

import (
	"container/heap"
	"sort"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// GreedyModularity implements fast-greedy (CNM-style) agglomerative
// modularity maximization generalized to weighted graphs. Starting from
// one community per vertex, it repeatedly merges the pair of connected
// communities with the largest modularity gain until no merge improves
// modularity.
//
// Merge candidates live in a max-heap keyed by gain, with lazy
// invalidation: every community carries a version stamp, bumped on
// merge, and popped candidates whose stamps are stale are discarded.
// Community degree sums and inter-community weights are maintained
// incrementally, never recomputed from scratch.
type GreedyModularity struct{}

// NewGreedyModularity creates the default detector.
func NewGreedyModularity() *GreedyModularity {
	return &GreedyModularity{}
}

// Name implements Detector.
func (d *GreedyModularity) Name() string {
	return "greedy-modularity"
}

// candidate is a potential merge of communities a and b (a < b), valid
// only while both communities still carry the recorded version stamps.
type candidate struct {
	gain   float64
	a, b   int
	va, vb int
}

// candidateHeap is a max-heap over merge candidates. Ties on gain break
// toward the smallest community id pair, in a fixed stable ordering, so
// detection is deterministic.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].gain != h[j].gain {
		return h[i].gain > h[j].gain
	}
	if h[i].a != h[j].a {
		return h[i].a < h[j].a
	}
	return h[i].b < h[j].b
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// mergeState tracks the agglomeration in progress.
type mergeState struct {
	m       float64 // total edge weight of the input graph
	active  []bool
	version []int
	degree  []float64 // community degree sums
	members [][]int
	inter   []map[int]float64 // inter-community edge weight totals
	heap    candidateHeap
}

// gain is the modularity change of merging communities a and b:
// e(a,b)/m - k(a)*k(b)/(2m²).
func (s *mergeState) gain(a, b int) float64 {
	return s.inter[a][b]/s.m - s.degree[a]*s.degree[b]/(2*s.m*s.m)
}

func (s *mergeState) pushCandidate(a, b int) {
	if a > b {
		a, b = b, a
	}
	heap.Push(&s.heap, candidate{
		gain: s.gain(a, b),
		a:    a,
		b:    b,
		va:   s.version[a],
		vb:   s.version[b],
	})
}

// stale reports whether a popped candidate refers to a community that
// has since been merged away or changed.
func (s *mergeState) stale(c candidate) bool {
	return !s.active[c.a] || !s.active[c.b] ||
		s.version[c.a] != c.va || s.version[c.b] != c.vb
}

// merge folds community gone into community keep, updating degree sums
// and inter-community weights incrementally and queueing fresh
// candidates for the merged community against each of its neighbors.
func (s *mergeState) merge(keep, gone int) {
	s.members[keep] = append(s.members[keep], s.members[gone]...)
	s.degree[keep] += s.degree[gone]
	s.active[gone] = false
	s.version[keep]++

	delete(s.inter[keep], gone)
	for c, w := range s.inter[gone] {
		if c == keep {
			continue
		}
		delete(s.inter[c], gone)
		s.inter[keep][c] += w
		s.inter[c][keep] = s.inter[keep][c]
	}
	s.inter[gone] = nil
	s.members[gone] = nil

	for c := range s.inter[keep] {
		s.pushCandidate(keep, c)
	}
}

// Partition implements Detector. A graph with zero total weight yields
// the partition of singleton communities.
func (d *GreedyModularity) Partition(g *graph.Graph) (Partition, error) {
	n := g.VertexCount()
	m := g.TotalWeight()
	if m == 0 {
		return singletons(n), nil
	}

	s := &mergeState{
		m:       m,
		active:  make([]bool, n),
		version: make([]int, n),
		degree:  make([]float64, n),
		members: make([][]int, n),
		inter:   make([]map[int]float64, n),
	}
	for v := 0; v < n; v++ {
		s.active[v] = true
		s.degree[v] = g.Degree(v)
		s.members[v] = []int{v}
		s.inter[v] = make(map[int]float64)
	}
	for _, e := range g.Edges() {
		s.inter[e.U][e.V] = e.Weight
		s.inter[e.V][e.U] = e.Weight
	}
	for _, e := range g.Edges() {
		s.pushCandidate(e.U, e.V)
	}

	for s.heap.Len() > 0 {
		c := heap.Pop(&s.heap).(candidate)
		if s.stale(c) {
			continue
		}
		if c.gain <= 0 {
			// Max-heap: nothing better remains.
			break
		}
		// The surviving community keeps the smaller id, so stable ids
		// feed the deterministic tie-break.
		s.merge(c.a, c.b)
	}

	return collect(s.members, s.active), nil
}

// singletons builds the partition of n one-vertex communities.
func singletons(n int) Partition {
	p := make(Partition, n)
	for v := 0; v < n; v++ {
		p[v] = []int{v}
	}
	return p
}

// collect assembles the surviving communities into canonical order:
// members ascending within each community, communities ordered by
// smallest member.
func collect(members [][]int, active []bool) Partition {
	p := make(Partition, 0, len(members))
	for c := range members {
		if !active[c] {
			continue
		}
		comm := append([]int(nil), members[c]...)
		sort.Ints(comm)
		p = append(p, comm)
	}
	sort.Slice(p, func(i, j int) bool { return p[i][0] < p[j][0] })
	return p
}
