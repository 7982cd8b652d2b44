// Package planner handles the planning phase of a merge.
//
// The planner turns matcher output into a deterministic MergePlan: an ordered
// list of edit operations meant to be applied as one transaction, plus the
// conflicts left for manual review.
//
// Key responsibilities:
//   - Emit a replace_geometry operation followed by a remove operation per match
//   - Keep the old footprint's identity and tags on replacement
//   - Demote matches that cannot be turned into edits to conflicts
//   - Guarantee no old footprint is the target of two replacements
package planner
