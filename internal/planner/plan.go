package planner

import (
	"github.com/paulmach/orb"
)

// MergePlan represents a plan to fold newly traced footprints into the
// footprints they replace.
type MergePlan struct {
	// Name labels the edit batch built from this plan
	Name string `json:"name" yaml:"name"`

	// Operations is the ordered list of operations to execute
	Operations []Operation `json:"operations" yaml:"operations"`

	// Merges lists the accepted pairs in the order they were planned
	Merges []Merge `json:"merges" yaml:"merges"`

	// Conflicts is a list of new footprints left for manual review
	Conflicts []Conflict `json:"conflicts" yaml:"conflicts"`
}

// Merge is one planned pairing of a new footprint with an old one.
type Merge struct {
	NewID int64   `json:"new_id" yaml:"new_id"`
	OldID int64   `json:"old_id" yaml:"old_id"`
	Score float64 `json:"score" yaml:"score"`
}

// Operation represents a single edit to execute.
type Operation struct {
	// Type is the operation type: "replace_geometry" or "remove"
	Type string `json:"type" yaml:"type"`

	// TargetID is the footprint edited by the operation
	TargetID int64 `json:"target_id" yaml:"target_id"`

	// SourceID is the new footprint whose outline replaces the target's
	// (replace_geometry only)
	SourceID int64 `json:"source_id,omitempty" yaml:"source_id,omitempty"`

	// Ring is the replacement outline (replace_geometry only)
	Ring orb.Ring `json:"ring,omitempty" yaml:"ring,omitempty"`

	// Tags is the tag set the target keeps (replace_geometry only)
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Conflict represents a new footprint that was not merged.
type Conflict struct {
	// Kind is "claimed" or "synthesis"
	Kind string `json:"kind" yaml:"kind"`

	// NewID is the conflicted new footprint
	NewID int64 `json:"new_id" yaml:"new_id"`

	// OldID is the old footprint it qualified for
	OldID int64 `json:"old_id" yaml:"old_id"`

	// ClaimedBy is the new footprint that holds OldID (claimed only)
	ClaimedBy int64 `json:"claimed_by,omitempty" yaml:"claimed_by,omitempty"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason" yaml:"reason"`
}

// Operation type constants
const (
	OpReplaceGeometry = "replace_geometry"
	OpRemove          = "remove"
)

// Conflict kind constants
const (
	ConflictClaimed   = "claimed"
	ConflictSynthesis = "synthesis"
)

// NewMergePlan creates a new empty MergePlan.
func NewMergePlan(name string) *MergePlan {
	return &MergePlan{
		Name:       name,
		Operations: []Operation{},
		Merges:     []Merge{},
		Conflicts:  []Conflict{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *MergePlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// IsEmpty returns true if the plan has no operations.
func (p *MergePlan) IsEmpty() bool {
	return len(p.Operations) == 0
}

// AddOperation adds an operation to the plan.
func (p *MergePlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddConflict adds a conflict to the plan.
func (p *MergePlan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// ConflictIDs returns the IDs of the conflicted new footprints in plan order.
func (p *MergePlan) ConflictIDs() []int64 {
	ids := make([]int64, 0, len(p.Conflicts))
	for _, c := range p.Conflicts {
		ids = append(ids, c.NewID)
	}
	return ids
}
