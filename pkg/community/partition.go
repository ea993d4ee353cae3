package community

import (
	"fmt"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// Partition groups the vertices of one graph into disjoint non-empty
// communities whose union is the full vertex set. Communities are
// ordered by their smallest member and each community lists its members
// in ascending order, so two equal partitions compare deep-equal.
type Partition [][]int

// Membership returns a vertex-indexed slice mapping each vertex to the
// index of its community within the partition. Vertices not covered by
// the partition map to -1.
func (p Partition) Membership(n int) []int {
	member := make([]int, n)
	for i := range member {
		member[i] = -1
	}
	for c, comm := range p {
		for _, v := range comm {
			if v >= 0 && v < n {
				member[v] = c
			}
		}
	}
	return member
}

// Validate checks that the partition covers {0..n-1} exactly once with
// no empty communities.
func (p Partition) Validate(n int) error {
	seen := make([]bool, n)
	covered := 0
	for c, comm := range p {
		if len(comm) == 0 {
			return fmt.Errorf("community %d is empty", c)
		}
		for _, v := range comm {
			if v < 0 || v >= n {
				return fmt.Errorf("community %d contains out-of-range vertex %d", c, v)
			}
			if seen[v] {
				return fmt.Errorf("vertex %d appears in more than one community", v)
			}
			seen[v] = true
			covered++
		}
	}
	if covered != n {
		return fmt.Errorf("partition covers %d of %d vertices", covered, n)
	}
	return nil
}

// Modularity computes the weighted modularity Q of a partition: the
// intra-community weight observed relative to the degree-proportional
// null expectation. Returns 0 for a graph with no edge weight.
func Modularity(g *graph.Graph, p Partition) float64 {
	m := g.TotalWeight()
	if m == 0 {
		return 0
	}

	q := 0.0
	for _, comm := range p {
		for _, u := range comm {
			for _, v := range comm {
				q += g.Weight(u, v) - g.Degree(u)*g.Degree(v)/(2*m)
			}
		}
	}
	return q / (2 * m)
}
