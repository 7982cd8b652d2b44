// Package fsops provides filesystem operations with safety guarantees.
//
// Dataset files and session state are only ever written through the FS
// interface. Writes go to a temp file in the target directory and are renamed
// into place, so a dataset on disk is always either the old snapshot or the
// fully merged one, never a partial write.
package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrInvalidIdentifier is returned for identifiers unsafe to use as file names.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidDatasetPath is returned for paths that cannot name a dataset file.
	ErrInvalidDatasetPath = errors.New("invalid dataset path")
)

// FS is the filesystem surface used by the dataset and session stores.
type FS interface {
	Remove(path string) error
	ReadFile(path string) ([]byte, error)

	// AtomicWrite replaces path with data, creating parent directories.
	// Readers see either the previous content or data, never a mix.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// ValidateIdentifier rejects ids that would escape their directory.
	ValidateIdentifier(id string) error

	// ValidateDatasetPath rejects paths that cannot hold a GeoJSON dataset.
	ValidateDatasetPath(path string) error
}

var datasetExtensions = []string{".geojson", ".json"}

const tempPattern = ".cleanslate-tmp-*"

// RealFS implements FS on the local disk.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// same directory as the target keeps the rename on one filesystem
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		run  func() error
	}{
		{"write", func() error { _, err := tmp.Write(data); return err }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), perm) }},
		{"rename", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("atomic write of %s failed at %s: %w", path, step.what, err)
		}
	}

	committed = true
	return nil
}

func (fs *RealFS) ValidateIdentifier(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	case strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidIdentifier, id)
	case id == "." || strings.HasPrefix(id, ".."):
		return fmt.Errorf("%w: %q refers to a parent or current directory", ErrInvalidIdentifier, id)
	}
	return nil
}

func (fs *RealFS) ValidateDatasetPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDatasetPath)
	}
	cleaned := filepath.Clean(path)
	if cleaned == "." {
		return fmt.Errorf("%w: empty", ErrInvalidDatasetPath)
	}

	if info, err := os.Stat(cleaned); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %q is a directory", ErrInvalidDatasetPath, cleaned)
	}

	if !slices.Contains(datasetExtensions, strings.ToLower(filepath.Ext(cleaned))) {
		return fmt.Errorf("%w: %q must end in %s", ErrInvalidDatasetPath, cleaned, strings.Join(datasetExtensions, " or "))
	}
	return nil
}
