package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Vertices returns the distinct vertices of a ring, dropping the closing
// point when the ring repeats its first vertex at the end.
func Vertices(r orb.Ring) orb.Ring {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// Area returns the signed area of the ring using the shoelace formula.
// Counter-clockwise rings are positive. Rings with fewer than three distinct
// vertices have area 0. Callers that need a magnitude take math.Abs.
func Area(r orb.Ring) float64 {
	v := Vertices(r)
	if len(v) < 3 {
		return 0
	}

	var sum float64
	for i := range v {
		j := (i + 1) % len(v)
		sum += v[i][0]*v[j][1] - v[j][0]*v[i][1]
	}
	return sum / 2
}

// boundArea returns the area of an axis-aligned box.
func boundArea(b orb.Bound) float64 {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// BoundOverlapRatio returns the area of the intersection of a and b divided
// by the area of reference. Boxes that do not overlap score 0. A reference box
// with no area yields FailureZeroReference instead of a division by zero.
func BoundOverlapRatio(a, b, reference orb.Bound) Score {
	refArea := boundArea(reference)
	if refArea == 0 {
		return failed(FailureZeroReference)
	}

	minX := math.Max(a.Min[0], b.Min[0])
	minY := math.Max(a.Min[1], b.Min[1])
	maxX := math.Min(a.Max[0], b.Max[0])
	maxY := math.Min(a.Max[1], b.Max[1])
	if minX >= maxX || minY >= maxY {
		return scored(0)
	}

	ratio := (maxX - minX) * (maxY - minY) / refArea
	return scored(math.Min(ratio, 1))
}
