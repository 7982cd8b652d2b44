package filter

import (
	"github.com/danieljhkim/cleanslate/internal/dataset"
)

// Context is the filter handle a merge brackets: it reads the prior state,
// switches the filter off while old footprints are collected, then puts the
// prior state back.
type Context interface {
	// Enabled reports whether the filter is on. It returns ErrNoFilter when
	// the filter does not exist.
	Enabled() (bool, error)

	// SetEnabled switches the filter.
	SetEnabled(enabled bool) error

	// Visible reports whether fp is visible under the current filter state.
	Visible(fp *dataset.Footprint) bool
}

// ModelContext adapts one filter of a Model to Context.
type ModelContext struct {
	model *Model
	text  string
}

// NewContext creates a Context for the filter with the given text.
func NewContext(m *Model, text string) *ModelContext {
	return &ModelContext{model: m, text: text}
}

// Enabled reports whether the filter is on.
func (c *ModelContext) Enabled() (bool, error) {
	e := c.model.lookup(c.text)
	if e == nil {
		return false, ErrNoFilter
	}
	return e.Enabled, nil
}

// SetEnabled switches the filter.
func (c *ModelContext) SetEnabled(enabled bool) error {
	return c.model.SetEnabled(c.text, enabled)
}

// Visible evaluates every filter of the model, not only this one.
func (c *ModelContext) Visible(fp *dataset.Footprint) bool {
	return c.model.Visible(fp)
}
