package planner

import (
	"fmt"
	"maps"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/geom"
	"github.com/danieljhkim/cleanslate/internal/matcher"
)

// SynthesisError reports an accepted match that could not be turned into
// edit operations.
type SynthesisError struct {
	NewID  int64
	OldID  int64
	Reason string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("cannot merge new footprint %d into %d: %s", e.NewID, e.OldID, e.Reason)
}

// synthesize builds the replace and remove operations for a match.
// Returns a *SynthesisError if the snapshot no longer supports the edit.
func synthesize(snapshot *dataset.Dataset, m matcher.Match, targeted map[int64]bool) ([]Operation, error) {
	fail := func(format string, args ...interface{}) error {
		return &SynthesisError{NewID: m.New.ID, OldID: m.Old.ID, Reason: fmt.Sprintf(format, args...)}
	}

	if n := len(geom.Vertices(m.New.Ring)); n < 3 {
		return nil, fail("new outline has %d distinct vertices", n)
	}
	if targeted[m.Old.ID] {
		return nil, fail("old footprint is already being replaced")
	}

	if _, ok := snapshot.Get(m.New.ID); !ok {
		return nil, fail("new footprint is not in the dataset")
	}
	old, ok := snapshot.Get(m.Old.ID)
	switch {
	case !ok:
		return nil, fail("old footprint is not in the dataset")
	case old.Deleted:
		return nil, fail("old footprint is deleted")
	case old.IsNew():
		return nil, fail("target has no persisted identity")
	}

	ring := dataset.CloneRing(m.New.Ring)
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	return []Operation{
		{
			Type:     OpReplaceGeometry,
			TargetID: old.ID,
			SourceID: m.New.ID,
			Ring:     ring,
			Tags:     maps.Clone(old.Tags),
		},
		{
			Type:     OpRemove,
			TargetID: m.New.ID,
		},
	}, nil
}
