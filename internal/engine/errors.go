package engine

import (
	"errors"

	"github.com/danieljhkim/cleanslate/internal/history"
)

var (
	// ErrNoActiveDataset indicates a merge was requested without a dataset.
	ErrNoActiveDataset = errors.New("no active dataset")

	// ErrNoActiveFilterContext indicates a merge was requested without a
	// filter context to bracket.
	ErrNoActiveFilterContext = errors.New("no active filter context")

	// ErrConflict indicates a strict merge found conflicts.
	ErrConflict = errors.New("conflict detected")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrDatasetChanged indicates the dataset file changed outside cleanslate
	// since the session last wrote it.
	ErrDatasetChanged = errors.New("dataset changed since last command")

	// ErrNothingToUndo indicates the session journal has no applied merge.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the session journal has no undone merge.
	ErrNothingToRedo = history.ErrNothingToRedo
)
