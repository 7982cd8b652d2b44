package state

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// ComputeSessionID computes a stable session ID from the dataset path. The
// path is made absolute and cleaned first so equivalent spellings share a
// session.
func ComputeSessionID(datasetPath string) (string, error) {
	abs, err := filepath.Abs(datasetPath)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256([]byte(filepath.Clean(abs)))
	return hex.EncodeToString(hash[:]), nil
}
