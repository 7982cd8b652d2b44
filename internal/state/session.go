package state

import (
	"time"

	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/history"
)

// SessionState represents the editing state of one dataset file.
// This is the authoritative record of what cleanslate has done to the file.
type SessionState struct {
	// Dataset is the absolute path of the dataset file
	Dataset string `json:"dataset"`

	// Fingerprint is the hash of the dataset file as last read or written
	Fingerprint string `json:"fingerprint"`

	// Filters is the ordered visibility filter list
	Filters []filter.Filter `json:"filters"`

	// Journal holds the applied and undone edit batches
	Journal history.Journal `json:"journal"`

	// UpdatedAt is when the session was last saved
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSessionState creates a new empty SessionState.
func NewSessionState(datasetPath, fingerprint string) *SessionState {
	return &SessionState{
		Dataset:     datasetPath,
		Fingerprint: fingerprint,
		Filters:     []filter.Filter{},
	}
}

// FilterModel compiles the session's filters into a model.
func (s *SessionState) FilterModel() (*filter.Model, error) {
	return filter.NewModel(s.Filters...)
}

// SetFilters stores the model's filters in the session.
func (s *SessionState) SetFilters(m *filter.Model) {
	s.Filters = m.Filters()
}
