// Package history applies edit batches atomically and keeps the undo/redo
// journal.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/planner"
)

var (
	// ErrInvalidTarget indicates an operation targets a footprint it cannot edit.
	ErrInvalidTarget = errors.New("invalid operation target")

	// ErrUnknownOperation indicates an operation type Apply does not handle.
	ErrUnknownOperation = errors.New("unknown operation type")
)

// ApplyError reports the operation that stopped a batch.
type ApplyError struct {
	Index int
	Op    planner.Operation
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("operation %d (%s on %d) failed: %v", e.Index, e.Op.Type, e.Op.TargetID, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Inverse records what an applied operation overwrote.
type Inverse struct {
	// Op is the operation this record reverses.
	Op planner.Operation `json:"op"`

	// Previous is the target state before a replace_geometry.
	Previous *dataset.Footprint `json:"previous,omitempty"`

	// Removal restores the target of a remove.
	Removal *dataset.Removal `json:"removal,omitempty"`
}

// Batch is one atomic group of operations and one undo step.
type Batch struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	CreatedAt  time.Time           `json:"created_at"`
	Operations []planner.Operation `json:"operations"`
	Inverses   []Inverse           `json:"inverses"`
}

// NewBatch creates an unapplied batch.
func NewBatch(name string, ops []planner.Operation, now time.Time) *Batch {
	return &Batch{
		ID:         uuid.New(),
		Name:       name,
		CreatedAt:  now,
		Operations: ops,
	}
}

// Apply executes ops in order against a copy of ds and returns the edited
// copy with the inverse of each operation. If any operation fails, ds is
// returned untouched along with an *ApplyError.
func Apply(ds *dataset.Dataset, ops []planner.Operation) (*dataset.Dataset, []Inverse, error) {
	work := ds.Clone()
	inverses := make([]Inverse, 0, len(ops))

	for i, op := range ops {
		inv, err := applyOne(work, op)
		if err != nil {
			return ds, nil, &ApplyError{Index: i, Op: op, Err: err}
		}
		inverses = append(inverses, inv)
	}

	return work, inverses, nil
}

func applyOne(ds *dataset.Dataset, op planner.Operation) (Inverse, error) {
	target, ok := ds.Get(op.TargetID)
	if !ok {
		return Inverse{}, fmt.Errorf("%w: %d", dataset.ErrNotFound, op.TargetID)
	}

	switch op.Type {
	case planner.OpReplaceGeometry:
		if target.IsNew() || target.Deleted {
			return Inverse{}, fmt.Errorf("%w: %d is not a live persisted footprint", ErrInvalidTarget, op.TargetID)
		}
		if len(op.Ring) < 4 || !op.Ring.Closed() {
			return Inverse{}, fmt.Errorf("%w: replacement ring for %d is not closed", ErrInvalidTarget, op.TargetID)
		}
		prev, err := ds.Replace(op.TargetID, op.Ring)
		if err != nil {
			return Inverse{}, err
		}
		return Inverse{Op: op, Previous: prev}, nil

	case planner.OpRemove:
		if target.Deleted {
			return Inverse{}, fmt.Errorf("%w: %d is already deleted", ErrInvalidTarget, op.TargetID)
		}
		removal, err := ds.Remove(op.TargetID)
		if err != nil {
			return Inverse{}, err
		}
		return Inverse{Op: op, Removal: removal}, nil

	default:
		return Inverse{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Type)
	}
}

// Revert undoes inverses in reverse order against a copy of ds. On failure ds
// is returned untouched.
func Revert(ds *dataset.Dataset, inverses []Inverse) (*dataset.Dataset, error) {
	work := ds.Clone()

	for i := len(inverses) - 1; i >= 0; i-- {
		inv := inverses[i]
		var err error
		switch {
		case inv.Previous != nil:
			err = work.Put(inv.Previous)
		case inv.Removal != nil:
			err = work.Restore(inv.Removal)
		default:
			err = fmt.Errorf("%w: inverse carries no prior state", ErrUnknownOperation)
		}
		if err != nil {
			return ds, &ApplyError{Index: i, Op: inv.Op, Err: err}
		}
	}

	return work, nil
}
