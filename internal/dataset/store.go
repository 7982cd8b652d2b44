package dataset

import (
	"fmt"

	"github.com/danieljhkim/cleanslate/internal/fsops"
	"github.com/danieljhkim/cleanslate/internal/hash"
)

// Store reads and writes dataset snapshots.
type Store interface {
	// Load reads the dataset at path and returns it with the fingerprint of
	// the bytes read.
	Load(path string) (*Dataset, string, error)

	// Save writes the dataset atomically and returns the fingerprint of the
	// bytes written.
	Save(path string, ds *Dataset) (string, error)
}

// FileStore implements Store on GeoJSON files.
type FileStore struct {
	fs     fsops.FS
	hasher hash.Hasher
}

// NewFileStore creates a new FileStore.
func NewFileStore(fs fsops.FS, hasher hash.Hasher) *FileStore {
	return &FileStore{fs: fs, hasher: hasher}
}

// Load reads and decodes the dataset at path.
func (s *FileStore) Load(path string) (*Dataset, string, error) {
	if err := s.fs.ValidateDatasetPath(path); err != nil {
		return nil, "", err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read dataset: %w", err)
	}

	ds, err := Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}

	return ds, s.hasher.Fingerprint(data), nil
}

// Save encodes and atomically writes the dataset to path.
func (s *FileStore) Save(path string, ds *Dataset) (string, error) {
	if err := s.fs.ValidateDatasetPath(path); err != nil {
		return "", err
	}

	data, err := Encode(ds)
	if err != nil {
		return "", err
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}

	return s.hasher.Fingerprint(data), nil
}
