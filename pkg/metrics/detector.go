package metrics

import (
	"time"

	"github.com/dd0wney/neurograph/pkg/community"
	"github.com/dd0wney/neurograph/pkg/graph"
)

// instrumentedDetector wraps a Detector and records every run.
type instrumentedDetector struct {
	inner    community.Detector
	registry *Registry
}

// InstrumentDetector wraps det so that every Partition call is recorded
// in the registry under the detector's name. The wrapper preserves the
// inner detector's determinism and concurrency safety.
func InstrumentDetector(det community.Detector, r *Registry) community.Detector {
	return &instrumentedDetector{inner: det, registry: r}
}

func (d *instrumentedDetector) Name() string {
	return d.inner.Name()
}

func (d *instrumentedDetector) Partition(g *graph.Graph) (community.Partition, error) {
	start := time.Now()
	p, err := d.inner.Partition(g)
	d.registry.RecordDetection(d.inner.Name(), len(p), time.Since(start), err)
	return p, err
}
