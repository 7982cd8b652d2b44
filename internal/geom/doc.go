// Package geom estimates how much two building footprints overlap.
//
// Exact polygon clipping is deliberately avoided. The estimate blends a cheap
// bounding-box overlap ratio with a vertex containment ratio, which is a close
// enough proxy for intersection area when comparing two tracings of the same
// building.
//
// Key functions:
//   - Area: signed shoelace area of a ring
//   - BoundOverlapRatio: intersection of two boxes relative to a reference box
//   - ContainmentRatio: share of one ring's vertices inside another ring
//   - Estimator.Combined: the blended overlap score used by the matcher
//
// Every scoring function returns a Score so that callers can tell a genuine
// zero overlap apart from a geometry that could not be scored at all.
package geom
