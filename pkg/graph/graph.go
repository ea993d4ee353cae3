package graph

import (
	"fmt"
)

// ErrShapeMismatch is returned when a weight matrix is not square or its
// size disagrees with the expected vertex count.
var ErrShapeMismatch = fmt.Errorf("weight matrix shape mismatch")

// ErrInvalidWeight is returned when a weight matrix contains a negative
// or asymmetric entry.
var ErrInvalidWeight = fmt.Errorf("invalid edge weight")

// Graph is a fixed-size weighted undirected simple graph backed by a
// dense symmetric weight matrix. The diagonal is forced to zero at
// construction (self-loops carry no meaning for connectivity networks).
// Instances are immutable after construction.
type Graph struct {
	n       int
	weights [][]float64
	degrees []float64
	total   float64 // total edge weight, each undirected edge counted once
}

// Edge is one undirected edge with non-zero weight. U < V always holds.
type Edge struct {
	U, V   int
	Weight float64
}

// New builds a Graph from an n×n weight matrix. The matrix is copied;
// the caller keeps ownership of its slice. Returns ErrShapeMismatch if
// the matrix is not square and ErrInvalidWeight if any off-diagonal
// entry is negative or differs from its transpose.
func New(weights [][]float64) (*Graph, error) {
	n := len(weights)
	for i, row := range weights {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), n)
		}
	}

	g := &Graph{
		n:       n,
		weights: make([][]float64, n),
		degrees: make([]float64, n),
	}

	for u := 0; u < n; u++ {
		g.weights[u] = make([]float64, n)
		copy(g.weights[u], weights[u])
		g.weights[u][u] = 0 // drop self-loops
	}

	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			w := g.weights[u][v]
			if w < 0 {
				return nil, fmt.Errorf("%w: negative weight %g at (%d,%d)", ErrInvalidWeight, w, u, v)
			}
			if w != g.weights[v][u] {
				return nil, fmt.Errorf("%w: asymmetric weights at (%d,%d): %g vs %g",
					ErrInvalidWeight, u, v, w, g.weights[v][u])
			}
			g.degrees[u] += w
			g.degrees[v] += w
			g.total += w
		}
	}

	return g, nil
}

// NewN builds a Graph and additionally requires the matrix to be n×n.
func NewN(n int, weights [][]float64) (*Graph, error) {
	if len(weights) != n {
		return nil, fmt.Errorf("%w: matrix is %d×%d, want %d×%d", ErrShapeMismatch, len(weights), len(weights), n, n)
	}
	return New(weights)
}

// FromEdges builds a Graph over n vertices from an edge list. Later
// duplicates of the same unordered pair overwrite earlier ones.
func FromEdges(n int, edges []Edge) (*Graph, error) {
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("%w: edge (%d,%d) outside vertex range [0,%d)", ErrShapeMismatch, e.U, e.V, n)
		}
		weights[e.U][e.V] = e.Weight
		weights[e.V][e.U] = e.Weight
	}
	return New(weights)
}

// VertexCount returns N.
func (g *Graph) VertexCount() int {
	return g.n
}

// Weight returns the weight of the unordered pair (u,v). Panics on an
// out-of-range index, consistent with slice access.
func (g *Graph) Weight(u, v int) float64 {
	return g.weights[u][v]
}

// Degree returns the weighted degree of vertex u.
func (g *Graph) Degree(u int) float64 {
	return g.degrees[u]
}

// TotalWeight returns the sum of all edge weights, each undirected edge
// counted once.
func (g *Graph) TotalWeight() float64 {
	return g.total
}

// Edges enumerates all edges with non-zero weight, ordered by (U,V)
// with U < V.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.n)
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if w := g.weights[u][v]; w != 0 {
				edges = append(edges, Edge{U: u, V: v, Weight: w})
			}
		}
	}
	return edges
}

// Neighbors returns the vertices adjacent to u with non-zero weight, in
// ascending order.
func (g *Graph) Neighbors(u int) []int {
	var out []int
	for v := 0; v < g.n; v++ {
		if g.weights[u][v] != 0 {
			out = append(out, v)
		}
	}
	return out
}
