package filter

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/cleanslate/internal/dataset"
)

// CleanSlateText is the filter that matches every persisted footprint.
const CleanSlateText = "id:1-"

var (
	// ErrNoFilter indicates no filter has the requested text.
	ErrNoFilter = errors.New("filter not found")

	// ErrDuplicateFilter indicates a filter with the same text already exists.
	ErrDuplicateFilter = errors.New("filter already exists")
)

// Filter is one entry of the filter list.
type Filter struct {
	// Text is the filter expression; it identifies the filter in a Model.
	Text string `json:"text" yaml:"text"`

	// Enabled switches the filter on.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Hiding hides matching footprints instead of only greying them out.
	Hiding bool `json:"hiding" yaml:"hiding"`

	// Inverted applies the filter to footprints that do not match.
	Inverted bool `json:"inverted,omitempty" yaml:"inverted,omitempty"`
}

type entry struct {
	Filter
	expr Expr
}

// applies reports whether the filter acts on fp.
func (e *entry) applies(fp *dataset.Footprint) bool {
	return e.expr(fp) != e.Inverted
}

// Model is an ordered list of filters.
// It is not safe for concurrent use.
type Model struct {
	entries []*entry
}

// NewModel creates a model holding the given filters in order.
func NewModel(filters ...Filter) (*Model, error) {
	m := &Model{}
	for _, f := range filters {
		if err := m.Add(f); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Filters returns a copy of the filter list.
func (m *Model) Filters() []Filter {
	out := make([]Filter, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Filter
	}
	return out
}

// Find returns the filter with the given text.
func (m *Model) Find(text string) (Filter, bool) {
	if e := m.lookup(text); e != nil {
		return e.Filter, true
	}
	return Filter{}, false
}

// Add compiles and appends a filter.
func (m *Model) Add(f Filter) error {
	if m.lookup(f.Text) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateFilter, f.Text)
	}
	expr, err := Compile(f.Text)
	if err != nil {
		return err
	}
	m.entries = append(m.entries, &entry{Filter: f, expr: expr})
	return nil
}

// Update overwrites the flags of an existing filter.
func (m *Model) Update(f Filter) error {
	e := m.lookup(f.Text)
	if e == nil {
		return fmt.Errorf("%w: %q", ErrNoFilter, f.Text)
	}
	e.Filter = f
	return nil
}

// SetEnabled switches a filter on or off.
func (m *Model) SetEnabled(text string, enabled bool) error {
	e := m.lookup(text)
	if e == nil {
		return fmt.Errorf("%w: %q", ErrNoFilter, text)
	}
	e.Enabled = enabled
	return nil
}

// Visible reports whether no enabled hiding filter applies to fp.
func (m *Model) Visible(fp *dataset.Footprint) bool {
	for _, e := range m.entries {
		if e.Enabled && e.Hiding && e.applies(fp) {
			return false
		}
	}
	return true
}

// Hidden counts the footprints of ds that are currently hidden.
func (m *Model) Hidden(ds *dataset.Dataset) int {
	n := 0
	for _, fp := range ds.Footprints() {
		if !m.Visible(fp) {
			n++
		}
	}
	return n
}

func (m *Model) lookup(text string) *entry {
	for _, e := range m.entries {
		if e.Text == text {
			return e
		}
	}
	return nil
}
