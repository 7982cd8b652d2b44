package engine

import (
	"context"
)

// Status returns the current status of a dataset and its session.
// It never writes the session.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	s, err := e.openSession(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Path:       s.path,
		SessionID:  s.id,
		HasSession: s.existed,
		InSync:     !s.existed || s.inSync(),
		Counts:     e.counts(s.dataset, s.filters),
	}

	if f, ok := s.filters.Find(e.settings.FilterText); ok {
		result.Filter = f
		result.HasFilter = true
	}

	if s.existed {
		result.Undo = len(s.state.Journal.Done)
		result.Redo = len(s.state.Journal.Undone)
		result.UpdatedAt = s.state.UpdatedAt
	}

	return result, nil
}
