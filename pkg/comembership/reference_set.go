package comembership

import (
	"fmt"

	"github.com/dd0wney/neurograph/pkg/dataset"
	"github.com/dd0wney/neurograph/pkg/graph"
)

// ReferenceSet is the trained classifier state: for each of the two
// classes, the ordered per-timestep co-membership reference graphs.
// Immutable once built; safe for concurrent readers.
type ReferenceSet struct {
	labels dataset.LabelPair
	refs   [2][]*graph.Graph
	n, t   int
}

// Labels returns the class label pair.
func (r *ReferenceSet) Labels() dataset.LabelPair {
	return r.labels
}

// VertexCount returns the N the set was trained with.
func (r *ReferenceSet) VertexCount() int {
	return r.n
}

// Timesteps returns the number of per-class reference graphs.
func (r *ReferenceSet) Timesteps() int {
	return r.t
}

// Reference returns the reference graph for a class at a timestep.
func (r *ReferenceSet) Reference(label dataset.Label, timestep int) (*graph.Graph, error) {
	if timestep < 0 || timestep >= r.t {
		return nil, fmt.Errorf("timestep %d outside [0,%d)", timestep, r.t)
	}
	for i, l := range r.labels {
		if l == label {
			return r.refs[i][timestep], nil
		}
	}
	return nil, fmt.Errorf("unknown class label %q", label)
}
