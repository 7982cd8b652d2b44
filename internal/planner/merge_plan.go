package planner

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/matcher"
)

// BuildMergePlan generates a deterministic plan from a matching result.
//
// Each match contributes a replace_geometry operation on the old footprint
// followed by a remove of the new one. Matcher conflicts, and matches that
// cannot be synthesized against snapshot, become plan conflicts and produce
// no operations. Conflicts are listed in the snapshot order of their new
// footprints, whichever stage produced them. The returned errors are the *SynthesisError values of the
// demoted matches.
func BuildMergePlan(name string, snapshot *dataset.Dataset, result *matcher.Result) (*MergePlan, []error) {
	plan := NewMergePlan(name)
	targeted := make(map[int64]bool, len(result.Matches))
	var demoted []error

	for _, m := range result.Matches {
		ops, err := synthesize(snapshot, m, targeted)
		if err != nil {
			var synthErr *SynthesisError
			reason := err.Error()
			if errors.As(err, &synthErr) {
				reason = synthErr.Reason
			}
			plan.AddConflict(Conflict{
				Kind:   ConflictSynthesis,
				NewID:  m.New.ID,
				OldID:  m.Old.ID,
				Reason: reason,
			})
			demoted = append(demoted, err)
			continue
		}

		for _, op := range ops {
			plan.AddOperation(op)
		}
		plan.Merges = append(plan.Merges, Merge{NewID: m.New.ID, OldID: m.Old.ID, Score: m.Score})
		targeted[m.Old.ID] = true
	}

	for _, c := range result.Conflicts {
		plan.AddConflict(Conflict{
			Kind:      ConflictClaimed,
			NewID:     c.New.ID,
			OldID:     c.Old.ID,
			ClaimedBy: c.ClaimedBy,
			Reason:    fmt.Sprintf("old footprint %d already merged with %d", c.Old.ID, c.ClaimedBy),
		})
	}

	slices.SortStableFunc(plan.Conflicts, func(a, b Conflict) int {
		return cmp.Compare(snapshot.Position(a.NewID), snapshot.Position(b.NewID))
	})

	return plan, demoted
}
