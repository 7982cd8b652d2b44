package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/history"
	"github.com/danieljhkim/cleanslate/internal/planner"
)

// MergeSummary counts the outcome of one merge.
type MergeSummary struct {
	// NewCount is the number of new buildings considered
	NewCount int `json:"new_count" yaml:"new_count"`

	// MergedCount is the number of new buildings folded into old ones
	MergedCount int `json:"merged_count" yaml:"merged_count"`

	// ConflictCount is the number of new buildings left for review
	ConflictCount int `json:"conflict_count" yaml:"conflict_count"`

	// Conflicts lists the IDs of the conflicted new buildings
	Conflicts []int64 `json:"conflicts" yaml:"conflicts"`

	// FailedPairs is the number of candidate pairs whose overlap could not
	// be computed and counted as 0
	FailedPairs int `json:"failed_pairs,omitempty" yaml:"failed_pairs,omitempty"`
}

// KeptNew is the number of new buildings that stay as new records.
func (s MergeSummary) KeptNew() int {
	return s.NewCount - s.MergedCount
}

// Message returns the one-line outcome shown to the operator.
func (s MergeSummary) Message() string {
	switch {
	case s.NewCount == 0:
		return "No new buildings found to merge"
	case s.MergedCount == 0 && s.ConflictCount == 0:
		return fmt.Sprintf("Found %d new buildings but no overlapping matches", s.NewCount)
	default:
		return fmt.Sprintf("Merged %d buildings\n%d new buildings, %d conflicts", s.MergedCount, s.KeptNew(), s.ConflictCount)
	}
}

// MergeResult is the outcome of MergeAndFix.
type MergeResult struct {
	// Plan is the generated plan
	Plan *planner.MergePlan `json:"plan" yaml:"plan"`

	// Batch is the unapplied edit batch (nil if the plan has no operations)
	Batch *history.Batch `json:"batch" yaml:"batch"`

	// Summary counts the outcome
	Summary MergeSummary `json:"summary" yaml:"summary"`
}

// LoadResult represents the result of opening a dataset.
type LoadResult struct {
	// Path is the absolute dataset path
	Path string `json:"path" yaml:"path"`

	// SessionID is the computed session ID
	SessionID string `json:"session_id" yaml:"session_id"`

	// Created is true when no session existed before
	Created bool `json:"created" yaml:"created"`

	// Reset is true when the file changed outside cleanslate and the undo
	// journal was discarded
	Reset bool `json:"reset" yaml:"reset"`

	// Counts describes the dataset
	Counts DatasetCounts `json:"counts" yaml:"counts"`
}

// MergeOutcome represents the result of Merge.
type MergeOutcome struct {
	// Path is the absolute dataset path
	Path string `json:"path" yaml:"path"`

	// Result is the planned merge
	Result *MergeResult `json:"result" yaml:"result"`

	// Applied is true when the batch was written to the dataset
	Applied bool `json:"applied" yaml:"applied"`

	// DryRun echoes the request
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Reset is true when the file changed outside cleanslate and the undo
	// journal was discarded first
	Reset bool `json:"reset" yaml:"reset"`
}

// HistoryResult represents the result of Undo or Redo.
type HistoryResult struct {
	// Path is the absolute dataset path
	Path string `json:"path" yaml:"path"`

	// BatchID and BatchName identify the batch that was reverted or replayed
	BatchID   uuid.UUID `json:"batch_id" yaml:"batch_id"`
	BatchName string    `json:"batch_name" yaml:"batch_name"`

	// Operations is the number of operations in the batch
	Operations int `json:"operations" yaml:"operations"`

	// CreatedAt is when the batch was first applied
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// CanUndo and CanRedo describe the journal afterwards
	CanUndo bool `json:"can_undo" yaml:"can_undo"`
	CanRedo bool `json:"can_redo" yaml:"can_redo"`
}

// DatasetCounts describes the content of a dataset.
type DatasetCounts struct {
	Footprints   int `json:"footprints" yaml:"footprints"`
	NewBuildings int `json:"new_buildings" yaml:"new_buildings"`
	OldBuildings int `json:"old_buildings" yaml:"old_buildings"`
	Hidden       int `json:"hidden" yaml:"hidden"`
	Visible      int `json:"visible" yaml:"visible"`
}

// StatusResult represents the current dataset and session status.
type StatusResult struct {
	// Path is the absolute dataset path
	Path string `json:"path" yaml:"path"`

	// SessionID is the computed session ID
	SessionID string `json:"session_id" yaml:"session_id"`

	// HasSession is true when session state exists on disk
	HasSession bool `json:"has_session" yaml:"has_session"`

	// InSync is false when the file changed outside cleanslate
	InSync bool `json:"in_sync" yaml:"in_sync"`

	// Filter is the clean-slate filter (zero value if absent)
	Filter filter.Filter `json:"filter" yaml:"filter"`

	// HasFilter is true when the clean-slate filter exists
	HasFilter bool `json:"has_filter" yaml:"has_filter"`

	// Counts describes the dataset
	Counts DatasetCounts `json:"counts" yaml:"counts"`

	// Undo and Redo are the journal depths
	Undo int `json:"undo" yaml:"undo"`
	Redo int `json:"redo" yaml:"redo"`

	// UpdatedAt is when the session was last saved
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// FilterResult represents the result of SetFilter.
type FilterResult struct {
	// Path is the absolute dataset path
	Path string `json:"path" yaml:"path"`

	// Filter is the clean-slate filter after the change
	Filter filter.Filter `json:"filter" yaml:"filter"`

	// Counts describes the dataset under the new filter state
	Counts DatasetCounts `json:"counts" yaml:"counts"`
}
