package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/cleanslate/internal/fsops"
)

// StateStore provides an interface for persisting session state.
type StateStore interface {
	// LoadSession loads the session state for the given session ID.
	// Returns os.ErrNotExist if the state doesn't exist.
	LoadSession(id string) (*SessionState, error)

	// SaveSession saves the session state atomically.
	SaveSession(id string, state *SessionState) error

	// DeleteSession deletes the session state file.
	DeleteSession(id string) error
}

// FileStateStore implements StateStore using JSON files on disk.
type FileStateStore struct {
	fs          fsops.FS
	sessionsDir string
}

// NewFileStateStore creates a new FileStateStore.
func NewFileStateStore(fs fsops.FS, sessionsDir string) *FileStateStore {
	return &FileStateStore{
		fs:          fs,
		sessionsDir: sessionsDir,
	}
}

func (s *FileStateStore) path(id string) (string, error) {
	if err := s.fs.ValidateIdentifier(id); err != nil {
		return "", fmt.Errorf("invalid session id: %w", err)
	}
	return filepath.Join(s.sessionsDir, id+".json"), nil
}

// LoadSession loads the session state for the given session ID.
func (s *FileStateStore) LoadSession(id string) (*SessionState, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	return &state, nil
}

// SaveSession saves the session state atomically.
func (s *FileStateStore) SaveSession(id string, state *SessionState) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	return nil
}

// DeleteSession deletes the session state file.
func (s *FileStateStore) DeleteSession(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session state: %w", err)
	}

	return nil
}
