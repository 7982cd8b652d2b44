package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/history"
	"github.com/danieljhkim/cleanslate/internal/logging"
	"github.com/danieljhkim/cleanslate/internal/planner"
)

// MergeAndFix folds newly traced buildings of snapshot into the pre-existing
// buildings they overlap.
//
// Algorithm steps:
// 1. Check preconditions (snapshot and filter context present)
// 2. Switch the filter context off, remembering its prior state
// 3. Collect visible new and old buildings
// 4. Match greedily in dataset order
// 5. Plan the edit batch
// 6. Restore the filter context on every exit path
//
// The snapshot is not modified. The returned Batch is nil when there is
// nothing to apply.
func (e *Engine) MergeAndFix(ctx context.Context, snapshot *dataset.Dataset, fc filter.Context) (result *MergeResult, err error) {
	if snapshot == nil {
		return nil, ErrNoActiveDataset
	}
	if fc == nil {
		return nil, ErrNoActiveFilterContext
	}
	log := logging.FromContext(ctx)

	restore, err := suspendFilter(fc)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			result = nil
			err = errors.Join(err, fmt.Errorf("failed to restore filter: %w", rerr))
		}
	}()

	news := visibleBuildings(snapshot, fc, dataset.ProvenanceNew, e.settings.TargetTag)
	olds := visibleBuildings(snapshot, fc, dataset.ProvenanceOld, e.settings.TargetTag)

	matched := e.matcher.Match(ctx, news, olds)
	plan, demoted := planner.BuildMergePlan(e.settings.BatchName, snapshot, matched)
	for _, d := range demoted {
		log.Warn().Err(d).Msg("match demoted to conflict")
	}

	summary := MergeSummary{
		NewCount:      len(news),
		MergedCount:   len(plan.Merges),
		ConflictCount: len(plan.Conflicts),
		Conflicts:     plan.ConflictIDs(),
		FailedPairs:   len(matched.Failures),
	}

	var batch *history.Batch
	if !plan.IsEmpty() {
		batch = history.NewBatch(plan.Name, plan.Operations, e.clock.Now())
	}

	log.Info().
		Int("new", summary.NewCount).
		Int("old", len(olds)).
		Int("merged", summary.MergedCount).
		Int("conflicts", summary.ConflictCount).
		Msg("merge planned")

	return &MergeResult{Plan: plan, Batch: batch, Summary: summary}, nil
}

// suspendFilter switches fc off and returns the function that restores its
// prior state. A missing filter is left alone.
func suspendFilter(fc filter.Context) (func() error, error) {
	enabled, err := fc.Enabled()
	if errors.Is(err, filter.ErrNoFilter) {
		return func() error { return nil }, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read filter state: %w", err)
	}
	if !enabled {
		return func() error { return nil }, nil
	}

	if err := fc.SetEnabled(false); err != nil {
		return nil, fmt.Errorf("failed to disable filter: %w", err)
	}
	return func() error { return fc.SetEnabled(true) }, nil
}

func visibleBuildings(ds *dataset.Dataset, fc filter.Context, prov dataset.Provenance, tag string) []*dataset.Footprint {
	var out []*dataset.Footprint
	for _, fp := range dataset.Buildings(ds, prov, tag) {
		if fc.Visible(fp) {
			out = append(out, fp)
		}
	}
	return out
}
