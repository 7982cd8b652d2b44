package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/cleanslate/internal/filter"
)

// SetFilter hides (Enabled) or shows existing buildings of a dataset by
// switching the clean-slate filter. A missing filter is created.
func (e *Engine) SetFilter(ctx context.Context, req *FilterRequest) (*FilterResult, error) {
	s, err := e.openSession(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	text := e.settings.FilterText
	if _, ok := s.filters.Find(text); !ok {
		if err := s.filters.Add(filter.Filter{Text: text, Hiding: true}); err != nil {
			return nil, fmt.Errorf("failed to add filter: %w", err)
		}
	}
	if err := s.filters.SetEnabled(text, req.Enabled); err != nil {
		return nil, fmt.Errorf("failed to switch filter: %w", err)
	}

	if err := e.save(s); err != nil {
		return nil, err
	}

	f, _ := s.filters.Find(text)
	sessionLogger(ctx, s).Debug().Bool("enabled", f.Enabled).Msg("filter switched")

	return &FilterResult{
		Path:   s.path,
		Filter: f,
		Counts: e.counts(s.dataset, s.filters),
	}, nil
}
