// Package hash fingerprints dataset snapshots.
//
// A fingerprint is the SHA-256 of the bytes a dataset was read from or written
// to. The engine records it after every command and compares it before undo or
// redo, so a journal is never replayed against a file that another editor has
// changed in the meantime.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher fingerprints serialized snapshots.
type Hasher interface {
	Fingerprint(data []byte) string
}

// Func adapts a plain function to Hasher.
type Func func(data []byte) string

func (f Func) Fingerprint(data []byte) string { return f(data) }

// SHA256Hasher fingerprints with hex-encoded SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

func (h *SHA256Hasher) Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
