// Package integration exercises the engine end to end against in-memory
// dataset files and session state.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/cleanslate/internal/clock"
	"github.com/danieljhkim/cleanslate/internal/config"
	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/engine"
	"github.com/danieljhkim/cleanslate/internal/fsops"
	"github.com/danieljhkim/cleanslate/internal/hash"
	"github.com/danieljhkim/cleanslate/internal/state"
)

const datasetPath = "/data/area.geojson"

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files  map[string][]byte
	dirs   map[string]bool
	writes int
}

var _ fsops.FS = (*testFS)(nil)

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

func (fs *testFS) Remove(path string) error {
	if _, ok := fs.files[path]; !ok {
		return os.ErrNotExist
	}
	delete(fs.files, path)
	return nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	_ = fs.MkdirAll(filepath.Dir(path), 0755)
	fs.files[path] = append([]byte(nil), data...)
	fs.writes++
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

func (fs *testFS) ValidateIdentifier(id string) error {
	return fsops.NewRealFS().ValidateIdentifier(id)
}

func (fs *testFS) ValidateDatasetPath(path string) error {
	if fs.dirs[filepath.Clean(path)] {
		return os.ErrInvalid
	}
	return fsops.NewRealFS().ValidateDatasetPath(path)
}

// testStateStore is an in-memory state store for testing. Sessions are
// stored serialized so callers never share journal slices with the engine.
type testStateStore struct {
	sessions map[string][]byte
}

var _ state.StateStore = (*testStateStore)(nil)

func newTestStateStore() *testStateStore {
	return &testStateStore{sessions: make(map[string][]byte)}
}

func (s *testStateStore) LoadSession(id string) (*state.SessionState, error) {
	data, ok := s.sessions[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	var st state.SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *testStateStore) SaveSession(id string, st *state.SessionState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	s.sessions[id] = data
	return nil
}

func (s *testStateStore) DeleteSession(id string) error {
	delete(s.sessions, id)
	return nil
}

// session returns the stored state of the test dataset's session.
func (s *testStateStore) session(t *testing.T) *state.SessionState {
	t.Helper()
	id, err := state.ComputeSessionID(datasetPath)
	if err != nil {
		t.Fatalf("ComputeSessionID() error = %v", err)
	}
	st, err := s.LoadSession(id)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	return st
}

func setupTestEngine(t *testing.T) (*engine.Engine, *testFS, *testStateStore) {
	t.Helper()
	fs := newTestFS()
	stateStore := newTestStateStore()
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	datasets := dataset.NewFileStore(fs, hash.NewSHA256Hasher())
	eng := engine.New(datasets, stateStore, clk, config.DefaultSettings())
	return eng, fs, stateStore
}

// writeDataset stores ds as the test dataset file.
func writeDataset(t *testing.T, fs *testFS, ds *dataset.Dataset) {
	t.Helper()
	data, err := dataset.Encode(ds)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	fs.files[datasetPath] = data
}

// readDataset decodes the test dataset file.
func readDataset(t *testing.T, fs *testFS) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Decode(fs.files[datasetPath])
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return ds
}
