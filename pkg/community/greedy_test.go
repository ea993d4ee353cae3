package community

import (
	"reflect"
	"testing"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// twoCliqueGraph builds two triangles joined by one weak bridge edge.
func twoCliqueGraph(t *testing.T) *graph.Graph {
	t.Helper()

	g, err := graph.FromEdges(6, []graph.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 0, V: 2, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 3, V: 4, Weight: 1},
		{U: 3, V: 5, Weight: 1},
		{U: 4, V: 5, Weight: 1},
		{U: 2, V: 3, Weight: 0.1},
	})
	if err != nil {
		t.Fatalf("Failed to build test graph: %v", err)
	}
	return g
}

// TestGreedyModularity_TwoCliques tests that two weakly bridged cliques
// separate into two communities
func TestGreedyModularity_TwoCliques(t *testing.T) {
	det := NewGreedyModularity()

	p, err := det.Partition(twoCliqueGraph(t))
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	expected := Partition{{0, 1, 2}, {3, 4, 5}}
	if !reflect.DeepEqual(p, expected) {
		t.Errorf("Expected partition %v, got %v", expected, p)
	}
}

// TestGreedyModularity_ZeroWeightGraph tests the degenerate case: a
// graph with no edge weight yields singleton communities, not a divide
// by zero
func TestGreedyModularity_ZeroWeightGraph(t *testing.T) {
	g, err := graph.FromEdges(4, nil)
	if err != nil {
		t.Fatalf("Failed to build empty graph: %v", err)
	}

	det := NewGreedyModularity()
	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if len(p) != 4 {
		t.Fatalf("Expected 4 singleton communities, got %d", len(p))
	}
	for v, comm := range p {
		if len(comm) != 1 || comm[0] != v {
			t.Errorf("Expected singleton {%d}, got %v", v, comm)
		}
	}
}

// TestGreedyModularity_SingleEdge tests that one positive edge merges
// its endpoints
func TestGreedyModularity_SingleEdge(t *testing.T) {
	g, err := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1, Weight: 2}})
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	det := NewGreedyModularity()
	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	expected := Partition{{0, 1}, {2}}
	if !reflect.DeepEqual(p, expected) {
		t.Errorf("Expected partition %v, got %v", expected, p)
	}
}

// TestGreedyModularity_Deterministic tests that repeated runs on the
// same graph return identical partitions
func TestGreedyModularity_Deterministic(t *testing.T) {
	g := twoCliqueGraph(t)
	det := NewGreedyModularity()

	first, err := det.Partition(g)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := det.Partition(g)
		if err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Run %d differs: %v vs %v", i, first, again)
		}
	}
}

// TestGreedyModularity_ImprovesOverSingletons tests that the result is
// never worse than the starting partition
func TestGreedyModularity_ImprovesOverSingletons(t *testing.T) {
	g := twoCliqueGraph(t)
	det := NewGreedyModularity()

	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	n := g.VertexCount()
	base := Modularity(g, singletons(n))
	got := Modularity(g, p)
	if got < base {
		t.Errorf("Result modularity %g below singleton baseline %g", got, base)
	}
}

// TestGreedyModularity_NoImprovingMergeRemains tests the halting
// condition: for the returned partition, merging any two communities
// would not increase modularity
func TestGreedyModularity_NoImprovingMergeRemains(t *testing.T) {
	g := twoCliqueGraph(t)
	det := NewGreedyModularity()

	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	m := g.TotalWeight()
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			var between, ki, kj float64
			for _, u := range p[i] {
				ki += g.Degree(u)
				for _, v := range p[j] {
					between += g.Weight(u, v)
				}
			}
			for _, v := range p[j] {
				kj += g.Degree(v)
			}

			gain := between/m - ki*kj/(2*m*m)
			if gain > 0 {
				t.Errorf("Merging communities %v and %v still gains %g modularity", p[i], p[j], gain)
			}
		}
	}
}

// TestGreedyModularity_PartitionValid tests the partition invariant on
// a graph with isolated vertices
func TestGreedyModularity_PartitionValid(t *testing.T) {
	g, err := graph.FromEdges(7, []graph.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 4, V: 5, Weight: 3},
	})
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	det := NewGreedyModularity()
	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if err := p.Validate(7); err != nil {
		t.Errorf("Invalid partition: %v", err)
	}
}
