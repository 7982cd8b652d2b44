package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveDatasetPath resolves a user-provided dataset path (absolute,
// relative, or containing "..") to a clean absolute path with a GeoJSON
// extension.
func resolveDatasetPath(userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("%w: dataset path is required", ErrValidation)
	}

	absPath, err := filepath.Abs(userPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve dataset path %q: %w", userPath, err)
	}

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".geojson", ".json":
		return absPath, nil
	default:
		return "", fmt.Errorf("%w: %q is not a .geojson or .json file", ErrValidation, userPath)
	}
}
