package filter

import (
	"github.com/rs/zerolog"

	"github.com/danieljhkim/cleanslate/internal/dataset"
)

// AutoHide keeps the clean-slate filter on for every non-empty dataset.
// It implements dataset.Listener.
type AutoHide struct {
	model  *Model
	text   string
	logger *zerolog.Logger
}

var _ dataset.Listener = (*AutoHide)(nil)

// NewAutoHide creates an AutoHide for the filter with the given text.
func NewAutoHide(m *Model, text string, logger *zerolog.Logger) *AutoHide {
	return &AutoHide{model: m, text: text, logger: logger}
}

// DatasetAdded hides persisted footprints of a newly opened dataset.
func (a *AutoHide) DatasetAdded(ds *dataset.Dataset) {
	a.apply(ds, "added")
}

// DatasetChanged hides persisted footprints after the dataset changes.
func (a *AutoHide) DatasetChanged(ds *dataset.Dataset) {
	a.apply(ds, "changed")
}

func (a *AutoHide) apply(ds *dataset.Dataset, event string) {
	if ds == nil || ds.Len() == 0 {
		return
	}

	want := Filter{Text: a.text, Enabled: true, Hiding: true}
	cur, ok := a.model.Find(a.text)
	switch {
	case !ok:
		if err := a.model.Add(want); err != nil {
			a.logger.Error().Err(err).Str("filter", a.text).Msg("failed to add filter")
			return
		}
	case cur.Enabled && cur.Hiding && !cur.Inverted:
		return
	default:
		if err := a.model.Update(want); err != nil {
			a.logger.Error().Err(err).Str("filter", a.text).Msg("failed to update filter")
			return
		}
	}

	a.logger.Debug().Str("filter", a.text).Str("event", event).Msg("hiding existing footprints")
}
