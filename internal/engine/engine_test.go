package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/cleanslate/internal/clock"
	"github.com/danieljhkim/cleanslate/internal/config"
	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/dataset/datasettest"
	"github.com/danieljhkim/cleanslate/internal/fsops"
	"github.com/danieljhkim/cleanslate/internal/hash"
	"github.com/danieljhkim/cleanslate/internal/state"
)

type fileFixture struct {
	engine   *Engine
	datasets *dataset.FileStore
	path     string
	clock    *clock.FakeClock
}

// newFileFixture writes a dataset with two traced buildings contesting one
// old building plus one unrelated old building.
func newFileFixture(t *testing.T) *fileFixture {
	t.Helper()
	dir := t.TempDir()
	fs := fsops.NewRealFS()
	datasets := dataset.NewFileStore(fs, hash.NewSHA256Hasher())
	clk := clock.NewFakeClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	path := filepath.Join(dir, "area.geojson")
	_, err := datasets.Save(path, datasettest.New(t,
		datasettest.Building(-1, 0, 0, 2, 2),
		datasettest.Building(-2, 0.1, 0, 2.1, 2),
		datasettest.WithTags(datasettest.Building(10, 0.05, 0, 2.05, 2), map[string]string{"name": "Depot"}),
		datasettest.Building(11, 9, 9, 10, 10),
	))
	require.NoError(t, err)

	return &fileFixture{
		engine:   New(datasets, state.NewFileStateStore(fs, filepath.Join(dir, "sessions")), clk, config.DefaultSettings()),
		datasets: datasets,
		path:     path,
		clock:    clk,
	}
}

func (f *fileFixture) read(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, _, err := f.datasets.Load(f.path)
	require.NoError(t, err)
	return ds
}

func TestLoad_StartsSessionAndHidesExisting(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	result, err := f.engine.Load(ctx, &LoadRequest{Path: f.path})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.False(t, result.Reset)
	assert.Equal(t, DatasetCounts{Footprints: 4, NewBuildings: 2, OldBuildings: 2, Hidden: 2, Visible: 2}, result.Counts)

	again, err := f.engine.Load(ctx, &LoadRequest{Path: f.path})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, result.SessionID, again.SessionID)
}

func TestLoad_Validation(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	_, err := f.engine.Load(ctx, &LoadRequest{Path: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.engine.Load(ctx, &LoadRequest{Path: "area.shp"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.engine.Load(ctx, &LoadRequest{Path: filepath.Join(filepath.Dir(f.path), "missing.geojson")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMerge_AppliesAndJournals(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	outcome, err := f.engine.Merge(ctx, &MergeRequest{Path: f.path})
	require.NoError(t, err)
	assert.True(t, outcome.Applied)
	assert.Equal(t, 1, outcome.Result.Summary.MergedCount)
	assert.Equal(t, []int64{-2}, outcome.Result.Summary.Conflicts)

	ds := f.read(t)
	assert.Equal(t, 3, ds.Len())
	_, ok := ds.Get(-1)
	assert.False(t, ok, "merged new building is removed")
	old, ok := ds.Get(10)
	require.True(t, ok)
	assert.Equal(t, datasettest.Square(0, 0, 2, 2), old.Ring)
	assert.Equal(t, "Depot", old.Tags["name"])
	assert.True(t, old.Modified)

	status, err := f.engine.Status(ctx, &StatusRequest{Path: f.path})
	require.NoError(t, err)
	assert.True(t, status.HasSession)
	assert.True(t, status.InSync)
	assert.Equal(t, 1, status.Undo)
	assert.Equal(t, 0, status.Redo)
	assert.True(t, status.HasFilter)
	assert.True(t, status.Filter.Enabled, "filter is back on after the merge")
}

func TestMerge_DryRunWritesNothing(t *testing.T) {
	f := newFileFixture(t)
	before, err := os.ReadFile(f.path)
	require.NoError(t, err)

	outcome, err := f.engine.Merge(context.Background(), &MergeRequest{Path: f.path, DryRun: true})
	require.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.NotNil(t, outcome.Result.Batch)

	after, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	status, err := f.engine.Status(context.Background(), &StatusRequest{Path: f.path})
	require.NoError(t, err)
	assert.False(t, status.HasSession)
}

func TestMerge_StrictRefusesConflicts(t *testing.T) {
	f := newFileFixture(t)
	before, err := os.ReadFile(f.path)
	require.NoError(t, err)

	outcome, err := f.engine.Merge(context.Background(), &MergeRequest{Path: f.path, Strict: true})
	assert.ErrorIs(t, err, ErrConflict)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Applied)

	after, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUndoRedo(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()
	original := f.read(t)

	_, err := f.engine.Undo(ctx, &UndoRequest{Path: f.path})
	assert.ErrorIs(t, err, ErrNotFound, "no session yet")

	_, err = f.engine.Merge(ctx, &MergeRequest{Path: f.path})
	require.NoError(t, err)

	undone, err := f.engine.Undo(ctx, &UndoRequest{Path: f.path})
	require.NoError(t, err)
	assert.Equal(t, "Clean Slate Merge", undone.BatchName)
	assert.Equal(t, 2, undone.Operations)
	assert.False(t, undone.CanUndo)
	assert.True(t, undone.CanRedo)

	restored := f.read(t)
	require.Equal(t, original.Len(), restored.Len())
	for i, fp := range original.Footprints() {
		assert.Equal(t, fp, restored.Footprints()[i])
	}

	_, err = f.engine.Undo(ctx, &UndoRequest{Path: f.path})
	assert.ErrorIs(t, err, ErrNothingToUndo)

	redone, err := f.engine.Redo(ctx, &RedoRequest{Path: f.path})
	require.NoError(t, err)
	assert.Equal(t, undone.BatchID, redone.BatchID)
	assert.Equal(t, 3, f.read(t).Len())

	_, err = f.engine.Redo(ctx, &RedoRequest{Path: f.path})
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestUndo_RefusesChangedDataset(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	_, err := f.engine.Merge(ctx, &MergeRequest{Path: f.path})
	require.NoError(t, err)

	// Someone else edits the file.
	_, err = f.datasets.Save(f.path, datasettest.New(t, datasettest.Building(10, 0, 0, 1, 1)))
	require.NoError(t, err)

	_, err = f.engine.Undo(ctx, &UndoRequest{Path: f.path})
	assert.ErrorIs(t, err, ErrDatasetChanged)

	status, err := f.engine.Status(ctx, &StatusRequest{Path: f.path})
	require.NoError(t, err)
	assert.False(t, status.InSync)

	loaded, err := f.engine.Load(ctx, &LoadRequest{Path: f.path})
	require.NoError(t, err)
	assert.True(t, loaded.Reset)

	status, err = f.engine.Status(ctx, &StatusRequest{Path: f.path})
	require.NoError(t, err)
	assert.True(t, status.InSync)
	assert.Equal(t, 0, status.Undo)
}

func TestSetFilter(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	shown, err := f.engine.SetFilter(ctx, &FilterRequest{Path: f.path, Enabled: false})
	require.NoError(t, err)
	assert.False(t, shown.Filter.Enabled)
	assert.Equal(t, 0, shown.Counts.Hidden)

	status, err := f.engine.Status(ctx, &StatusRequest{Path: f.path})
	require.NoError(t, err)
	assert.False(t, status.Filter.Enabled)

	hidden, err := f.engine.SetFilter(ctx, &FilterRequest{Path: f.path, Enabled: true})
	require.NoError(t, err)
	assert.True(t, hidden.Filter.Enabled)
	assert.True(t, hidden.Filter.Hiding)
	assert.Equal(t, 2, hidden.Counts.Hidden)
}
