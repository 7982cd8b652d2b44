package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/history"
)

// Undo reverts the most recent merge of a dataset file.
func (e *Engine) Undo(ctx context.Context, req *UndoRequest) (*HistoryResult, error) {
	return e.replay(ctx, req.Path, "undo", (*history.Journal).Undo)
}

// Redo re-applies the most recently undone merge of a dataset file.
func (e *Engine) Redo(ctx context.Context, req *RedoRequest) (*HistoryResult, error) {
	return e.replay(ctx, req.Path, "redo", (*history.Journal).Redo)
}

type journalStep func(*history.Journal, *dataset.Dataset) (*dataset.Dataset, *history.Batch, error)

func (e *Engine) replay(ctx context.Context, path, action string, step journalStep) (*HistoryResult, error) {
	s, err := e.openSession(ctx, path)
	if err != nil {
		return nil, err
	}
	if !s.existed {
		return nil, fmt.Errorf("%w: no session for %s", ErrNotFound, s.path)
	}
	if !s.inSync() {
		return nil, fmt.Errorf("%w: run load to start a new session", ErrDatasetChanged)
	}

	edited, batch, err := step(&s.state.Journal, s.dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}

	if err := e.writeDataset(s, edited); err != nil {
		return nil, err
	}
	if err := e.save(s); err != nil {
		return nil, err
	}

	sessionLogger(ctx, s).Info().
		Str("batch", batch.ID.String()).
		Str("action", action).
		Msg("journal replayed")

	return &HistoryResult{
		Path:       s.path,
		BatchID:    batch.ID,
		BatchName:  batch.Name,
		Operations: len(batch.Operations),
		CreatedAt:  batch.CreatedAt,
		CanUndo:    s.state.Journal.CanUndo(),
		CanRedo:    s.state.Journal.CanRedo(),
	}, nil
}
