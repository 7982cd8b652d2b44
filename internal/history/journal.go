package history

import (
	"errors"

	"github.com/danieljhkim/cleanslate/internal/dataset"
)

var (
	// ErrNothingToUndo indicates the journal has no applied batch.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the journal has no undone batch.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Journal is the undo/redo stack of applied batches.
type Journal struct {
	Done   []Batch `json:"done"`
	Undone []Batch `json:"undone"`
}

// Record pushes an applied batch and clears the redo stack.
func (j *Journal) Record(b Batch) {
	j.Done = append(j.Done, b)
	j.Undone = nil
}

// CanUndo reports whether there is a batch to undo.
func (j *Journal) CanUndo() bool {
	return len(j.Done) > 0
}

// CanRedo reports whether there is a batch to redo.
func (j *Journal) CanRedo() bool {
	return len(j.Undone) > 0
}

// Undo reverts the most recent batch against ds and moves it to the redo
// stack. The journal is unchanged on error.
func (j *Journal) Undo(ds *dataset.Dataset) (*dataset.Dataset, *Batch, error) {
	if !j.CanUndo() {
		return ds, nil, ErrNothingToUndo
	}

	b := j.Done[len(j.Done)-1]
	out, err := Revert(ds, b.Inverses)
	if err != nil {
		return ds, nil, err
	}

	j.Done = j.Done[:len(j.Done)-1]
	j.Undone = append(j.Undone, b)
	return out, &b, nil
}

// Redo re-applies the most recently undone batch against ds and moves it
// back to the done stack. The journal is unchanged on error.
func (j *Journal) Redo(ds *dataset.Dataset) (*dataset.Dataset, *Batch, error) {
	if !j.CanRedo() {
		return ds, nil, ErrNothingToRedo
	}

	b := j.Undone[len(j.Undone)-1]
	out, inverses, err := Apply(ds, b.Operations)
	if err != nil {
		return ds, nil, err
	}
	b.Inverses = inverses

	j.Undone = j.Undone[:len(j.Undone)-1]
	j.Done = append(j.Done, b)
	return out, &b, nil
}
