// Package community detects community structure in weighted undirected
// graphs. The primary detector is greedy agglomerative modularity
// maximization; label propagation is available as a faster alternative
// behind the same interface.
package community

import (
	"github.com/dd0wney/neurograph/pkg/graph"
)

// Detector produces a community partition for one graph. Detectors are
// stateless between calls and safe for concurrent use; a given detector
// always returns the same partition for the same graph.
type Detector interface {
	// Name identifies the algorithm, e.g. for logs and metrics labels.
	Name() string
	// Partition groups the graph's vertices into disjoint communities.
	Partition(g *graph.Graph) (Partition, error)
}
