package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ContainmentRatio returns the fraction of ringA's distinct vertices that lie
// inside ringB. The test is ray-crossing parity; vertices on ringB's boundary
// count as inside, so a ring compared with itself scores 1. The ratio is not
// symmetric.
func ContainmentRatio(ringA, ringB orb.Ring) Score {
	a := Vertices(ringA)
	b := Vertices(ringB)
	if len(a) < 3 || len(b) < 3 {
		return failed(FailureMalformedRing)
	}

	inside := 0
	for _, p := range a {
		if planar.RingContains(b, p) {
			inside++
		}
	}
	return scored(float64(inside) / float64(len(a)))
}
