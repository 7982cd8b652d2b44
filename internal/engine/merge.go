package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/history"
)

// Merge runs MergeAndFix on a dataset file and applies the resulting batch.
//
// Algorithm steps:
// 1. Open the dataset and its session
// 2. Discard the undo journal if the file changed outside cleanslate
// 3. Run MergeAndFix bracketed by the session's clean-slate filter
// 4. Stop here on DryRun, on an empty plan, or on conflicts when Strict
// 5. Apply the batch atomically and write the dataset
// 6. Record the batch in the journal and persist the session
func (e *Engine) Merge(ctx context.Context, req *MergeRequest) (*MergeOutcome, error) {
	s, err := e.openSession(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	reset := e.resetIfChanged(ctx, s)

	fc := filter.NewContext(s.filters, e.settings.FilterText)
	result, err := e.MergeAndFix(ctx, s.dataset, fc)
	if err != nil {
		return nil, err
	}

	outcome := &MergeOutcome{
		Path:   s.path,
		Result: result,
		DryRun: req.DryRun,
		Reset:  reset,
	}

	if req.DryRun {
		return outcome, nil
	}

	if req.Strict && result.Plan.HasConflicts() {
		return outcome, fmt.Errorf("%w: %d conflicts detected", ErrConflict, len(result.Plan.Conflicts))
	}

	if result.Batch != nil {
		edited, inverses, err := history.Apply(s.dataset, result.Batch.Operations)
		if err != nil {
			return nil, fmt.Errorf("failed to apply merge: %w", err)
		}
		result.Batch.Inverses = inverses

		if err := e.writeDataset(s, edited); err != nil {
			return nil, err
		}
		s.state.Journal.Record(*result.Batch)
		outcome.Applied = true
	}

	if err := e.save(s); err != nil {
		return nil, err
	}

	return outcome, nil
}
