package engine

import (
	"context"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/history"
)

// Load opens a dataset and starts or refreshes its session.
//
// Algorithm steps:
// 1. Read the dataset and its session (a new session hides existing buildings)
// 2. Discard the undo journal if the file changed outside cleanslate
// 3. Persist the session
func (e *Engine) Load(ctx context.Context, req *LoadRequest) (*LoadResult, error) {
	s, err := e.openSession(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	reset := e.resetIfChanged(ctx, s)

	if err := e.save(s); err != nil {
		return nil, err
	}

	return &LoadResult{
		Path:      s.path,
		SessionID: s.id,
		Created:   !s.existed,
		Reset:     reset,
		Counts:    e.counts(s.dataset, s.filters),
	}, nil
}

// resetIfChanged drops the journal of a session whose file was edited
// elsewhere. Its inverses no longer describe the file.
func (e *Engine) resetIfChanged(ctx context.Context, s *session) bool {
	if !s.existed || s.inSync() {
		return false
	}

	sessionLogger(ctx, s).Warn().
		Int("discarded", len(s.state.Journal.Done)+len(s.state.Journal.Undone)).
		Msg("dataset changed outside cleanslate, discarding undo history")
	s.state.Journal = history.Journal{}
	s.notifier.NotifyChanged(s.dataset)
	return true
}

// counts describes ds under the filters of m.
func (e *Engine) counts(ds *dataset.Dataset, m *filter.Model) DatasetCounts {
	c := DatasetCounts{
		Footprints:   ds.Len(),
		NewBuildings: len(dataset.Buildings(ds, dataset.ProvenanceNew, e.settings.TargetTag)),
		OldBuildings: len(dataset.Buildings(ds, dataset.ProvenanceOld, e.settings.TargetTag)),
		Hidden:       m.Hidden(ds),
	}
	c.Visible = c.Footprints - c.Hidden
	return c
}
