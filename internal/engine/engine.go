// Package engine provides the core business logic for cleanslate operations.
//
// The engine package acts as the orchestration layer between the CLI or HTTP
// surfaces and the lower-level packages. It coordinates dataset loading,
// session state, the clean-slate filter, matching, planning, and journaled
// application of edit batches.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - MergeAndFix: Pure merge over a snapshot, bracketed by a filter context
//   - Merge/Undo/Redo: Journaled edits of a dataset file
//   - Load/Status/SetFilter: Session and visibility management
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/cleanslate/internal/clock"
	"github.com/danieljhkim/cleanslate/internal/config"
	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/geom"
	"github.com/danieljhkim/cleanslate/internal/logging"
	"github.com/danieljhkim/cleanslate/internal/matcher"
	"github.com/danieljhkim/cleanslate/internal/state"
)

// Engine orchestrates all cleanslate operations.
// It is the main API surface called by the CLI and the HTTP server.
type Engine struct {
	datasets   dataset.Store
	stateStore state.StateStore
	clock      clock.Clock
	settings   config.Settings
	matcher    *matcher.Matcher
}

// New creates a new Engine with the given dependencies.
func New(
	datasets dataset.Store,
	stateStore state.StateStore,
	clk clock.Clock,
	settings config.Settings,
) *Engine {
	scorer := matcher.EstimatorScorer{Estimator: geom.NewEstimator(settings.Estimator())}
	return &Engine{
		datasets:   datasets,
		stateStore: stateStore,
		clock:      clk,
		settings:   settings,
		matcher:    matcher.New(scorer, settings.Matcher()),
	}
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// session bundles what every file-backed operation needs.
type session struct {
	path        string
	id          string
	state       *state.SessionState
	existed     bool
	dataset     *dataset.Dataset
	fingerprint string
	filters     *filter.Model
	notifier    *dataset.Notifier
}

// openSession loads the dataset at userPath together with its session
// state. A session that does not exist yet is created in memory and the
// dataset is announced to the auto-hide observer.
func (e *Engine) openSession(ctx context.Context, userPath string) (*session, error) {
	path, err := resolveDatasetPath(userPath)
	if err != nil {
		return nil, err
	}

	ds, fingerprint, err := e.datasets.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: dataset %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	id, err := state.ComputeSessionID(path)
	if err != nil {
		return nil, fmt.Errorf("failed to compute session id: %w", err)
	}

	st, err := e.stateStore.LoadSession(id)
	existed := err == nil
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load session state: %w", err)
		}
		st = state.NewSessionState(path, fingerprint)
	}

	model, err := st.FilterModel()
	if err != nil {
		return nil, fmt.Errorf("failed to restore filters: %w", err)
	}

	s := &session{
		path:        path,
		id:          id,
		state:       st,
		existed:     existed,
		dataset:     ds,
		fingerprint: fingerprint,
		filters:     model,
		notifier:    &dataset.Notifier{},
	}
	s.notifier.Subscribe(filter.NewAutoHide(model, e.settings.FilterText, logging.FromContext(ctx)))

	if !existed {
		s.notifier.NotifyAdded(ds)
	}

	return s, nil
}

// inSync reports whether the dataset file is the one the session last saw.
func (s *session) inSync() bool {
	return s.state.Fingerprint == s.fingerprint
}

// save persists the session's filters and stamps it.
func (e *Engine) save(s *session) error {
	s.state.Dataset = s.path
	s.state.Fingerprint = s.fingerprint
	s.state.SetFilters(s.filters)
	s.state.UpdatedAt = e.clock.Now()
	if err := e.stateStore.SaveSession(s.id, s.state); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// writeDataset saves ds as the session's dataset and fires the change event.
func (e *Engine) writeDataset(s *session, ds *dataset.Dataset) error {
	fingerprint, err := e.datasets.Save(s.path, ds)
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	s.dataset = ds
	s.fingerprint = fingerprint
	s.notifier.NotifyChanged(ds)
	return nil
}

func sessionLogger(ctx context.Context, s *session) *zerolog.Logger {
	l := logging.FromContext(ctx).With().Str("dataset", s.path).Logger()
	return &l
}
