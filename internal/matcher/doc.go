// Package matcher pairs newly traced footprints with pre-existing ones.
//
// Matching is greedy and single pass. New footprints are visited in the
// order given; each one takes the best scoring unclaimed old footprint whose
// score is strictly above the acceptance threshold. A claimed old footprint
// is never reassigned, so an earlier new footprint can win an old footprint
// that a later one would have fit better. A new footprint whose only
// qualifying partners are already claimed is reported as a conflict.
package matcher
