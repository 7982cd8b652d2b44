// Package config manages cleanslate configuration and filesystem paths.
//
// Configuration includes the locations of cleanslate data directories, which
// can be customized via environment variables, and the tunable merge
// settings. The default root is ~/.cleanslate/ containing sessions/ and
// config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by cleanslate.
type Paths struct {
	// Root is the base directory for all cleanslate data (default: ~/.cleanslate)
	Root string

	// Sessions is the directory containing session state files
	Sessions string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for cleanslate.
// Paths can be overridden with environment variables:
// - CLEANSLATE_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("CLEANSLATE_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".cleanslate")
	}

	return &Paths{
		Root:     root,
		Sessions: filepath.Join(root, "sessions"),
		Config:   filepath.Join(root, "config.yaml"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Sessions} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
