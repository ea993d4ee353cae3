package community

import (
	"reflect"
	"testing"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// TestLabelPropagation_TwoCliques tests that weakly bridged cliques
// separate
func TestLabelPropagation_TwoCliques(t *testing.T) {
	det := NewLabelPropagation()

	p, err := det.Partition(twoCliqueGraph(t))
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if err := p.Validate(6); err != nil {
		t.Fatalf("Invalid partition: %v", err)
	}

	member := p.Membership(6)
	if member[0] != member[1] || member[1] != member[2] {
		t.Errorf("Expected vertices 0..2 in one community, got memberships %v", member)
	}
	if member[3] != member[4] || member[4] != member[5] {
		t.Errorf("Expected vertices 3..5 in one community, got memberships %v", member)
	}
}

// TestLabelPropagation_IsolatedVertices tests that vertices with no
// edges keep their own label
func TestLabelPropagation_IsolatedVertices(t *testing.T) {
	g, err := graph.FromEdges(3, nil)
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	det := NewLabelPropagation()
	p, err := det.Partition(g)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	expected := Partition{{0}, {1}, {2}}
	if !reflect.DeepEqual(p, expected) {
		t.Errorf("Expected %v, got %v", expected, p)
	}
}

// TestLabelPropagation_Deterministic tests repeated runs agree
func TestLabelPropagation_Deterministic(t *testing.T) {
	g := twoCliqueGraph(t)
	det := NewLabelPropagation()

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
