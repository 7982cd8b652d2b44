package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Config holds the tunable constants of the overlap estimate.
type Config struct {
	// CheapReject is the box overlap ratio below which a pair scores 0
	// without running containment tests.
	CheapReject float64

	// BoxWeight is the weight of the box overlap ratio in the blend.
	BoxWeight float64

	// NodeWeight is the weight of the vertex containment ratio in the blend.
	NodeWeight float64
}

// DefaultConfig returns the estimator constants used by the mapping workflow.
func DefaultConfig() Config {
	return Config{
		CheapReject: 0.3,
		BoxWeight:   0.3,
		NodeWeight:  0.7,
	}
}

// Validate checks that the constants describe a blend in [0,1].
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"cheap reject": c.CheapReject,
		"box weight":   c.BoxWeight,
		"node weight":  c.NodeWeight,
	} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%s must be within [0,1], got %v", name, v)
		}
	}
	if math.Abs(c.BoxWeight+c.NodeWeight-1) > 1e-9 {
		return fmt.Errorf("box and node weights must sum to 1, got %v", c.BoxWeight+c.NodeWeight)
	}
	return nil
}

// Estimator computes the combined overlap score between a newly traced ring
// and a pre-existing ring.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an Estimator with the given constants.
func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Config returns the estimator constants.
func (e *Estimator) Config() Config {
	return e.cfg
}

// Blend combines a box overlap ratio and a node overlap ratio.
func (e *Estimator) Blend(box, node float64) float64 {
	return e.cfg.BoxWeight*box + e.cfg.NodeWeight*node
}

// Combined scores how well newRing overlaps oldRing.
//
// The old ring's bounding box is the reference for the box ratio. Pairs whose
// box ratio falls below CheapReject score 0 immediately. Otherwise the node
// overlap is the larger of the two containment ratios (new in old, old in new)
// and the result is Blend(box, node).
func (e *Estimator) Combined(newRing, oldRing orb.Ring) Score {
	if len(Vertices(newRing)) < 3 || len(Vertices(oldRing)) < 3 {
		return failed(FailureMalformedRing)
	}
	if Area(oldRing) == 0 {
		return failed(FailureDegenerate)
	}

	oldBound := oldRing.Bound()
	box := BoundOverlapRatio(newRing.Bound(), oldBound, oldBound)
	if !box.OK() {
		return box
	}
	if box.Value < e.cfg.CheapReject {
		return scored(0)
	}

	forward := ContainmentRatio(newRing, oldRing)
	if !forward.OK() {
		return forward
	}
	backward := ContainmentRatio(oldRing, newRing)
	if !backward.OK() {
		return backward
	}

	node := math.Max(forward.Value, backward.Value)
	return scored(e.Blend(box.Value, node))
}
