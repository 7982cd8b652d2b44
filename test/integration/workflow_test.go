package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/danieljhkim/cleanslate/internal/dataset/datasettest"
	"github.com/danieljhkim/cleanslate/internal/engine"
)

// seed writes two traced buildings contesting one existing building, plus
// an unrelated existing building.
func seed(t *testing.T, fs *testFS) {
	t.Helper()
	writeDataset(t, fs, datasettest.New(t,
		datasettest.Building(-1, 0, 0, 2, 2),
		datasettest.Building(-2, 0.1, 0, 2.1, 2),
		datasettest.WithTags(datasettest.Building(10, 0.05, 0, 2.05, 2), map[string]string{"name": "Depot"}),
		datasettest.Building(11, 9, 9, 10, 10),
	))
}

func TestWorkflow_FullCycle(t *testing.T) {
	eng, fs, stateStore := setupTestEngine(t)
	ctx := context.Background()
	seed(t, fs)

	loaded, err := eng.Load(ctx, &engine.LoadRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Counts.Hidden != 2 {
		t.Errorf("expected existing buildings hidden, got %+v", loaded.Counts)
	}

	// Merge while the clean-slate filter hides the existing buildings
	outcome, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if !outcome.Applied {
		t.Fatal("expected merge to be applied")
	}
	summary := outcome.Result.Summary
	if summary.MergedCount != 1 || summary.ConflictCount != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if got := summary.Message(); got != "Merged 1 buildings\n1 new buildings, 1 conflicts" {
		t.Errorf("Message() = %q", got)
	}

	ds := readDataset(t, fs)
	if _, ok := ds.Get(-1); ok {
		t.Error("expected merged traced building to be removed")
	}
	if _, ok := ds.Get(-2); !ok {
		t.Error("expected conflicted traced building to stay")
	}
	depot, ok := ds.Get(10)
	if !ok {
		t.Fatal("expected depot to survive")
	}
	if !depot.Modified || depot.Tags["name"] != "Depot" {
		t.Errorf("expected depot modified with its tags, got %+v", depot)
	}
	if !depot.Ring.Equal(datasettest.Square(0, 0, 2, 2)) {
		t.Errorf("expected depot to take the traced outline, got %v", depot.Ring)
	}

	st := stateStore.session(t)
	if len(st.Journal.Done) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(st.Journal.Done))
	}

	// Undo restores the file
	if _, err := eng.Undo(ctx, &engine.UndoRequest{Path: datasetPath}); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	ds = readDataset(t, fs)
	if _, ok := ds.Get(-1); !ok {
		t.Error("expected traced building restored")
	}
	depot, _ = ds.Get(10)
	if depot.Modified || !depot.Ring.Equal(datasettest.Square(0.05, 0, 2.05, 2)) {
		t.Errorf("expected depot restored, got %+v", depot)
	}

	// Redo re-applies it
	if _, err := eng.Redo(ctx, &engine.RedoRequest{Path: datasetPath}); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if _, ok := readDataset(t, fs).Get(-1); ok {
		t.Error("expected redo to remove the traced building")
	}
}

func TestWorkflow_SecondMergeTakesFormerConflict(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()
	seed(t, fs)

	if _, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath}); err != nil {
		t.Fatalf("first Merge() error = %v", err)
	}

	// The depot is unclaimed again in a new run
	outcome, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("second Merge() error = %v", err)
	}
	if outcome.Result.Summary.MergedCount != 1 || outcome.Result.Summary.ConflictCount != 0 {
		t.Errorf("unexpected summary: %+v", outcome.Result.Summary)
	}

	ds := readDataset(t, fs)
	if ds.Len() != 2 {
		t.Errorf("expected only existing buildings left, got %d footprints", ds.Len())
	}

	status, err := eng.Status(ctx, &engine.StatusRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Undo != 2 {
		t.Errorf("expected 2 undoable merges, got %d", status.Undo)
	}
}

func TestWorkflow_NothingToMergeWritesNothing(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()
	writeDataset(t, fs, datasettest.New(t, datasettest.Building(10, 0, 0, 1, 1)))

	outcome, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if outcome.Applied || outcome.Result.Batch != nil {
		t.Error("expected no batch")
	}
	if got := outcome.Result.Summary.Message(); got != "No new buildings found to merge" {
		t.Errorf("Message() = %q", got)
	}
	if fs.writes != 0 {
		t.Errorf("expected the dataset untouched, got %d writes", fs.writes)
	}
}

func TestWorkflow_StrictLeavesFileAlone(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()
	seed(t, fs)
	before := string(fs.files[datasetPath])

	outcome, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath, Strict: true})
	if !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if outcome == nil || len(outcome.Result.Plan.Conflicts) != 1 {
		t.Fatalf("expected the outcome with 1 conflict, got %+v", outcome)
	}
	if string(fs.files[datasetPath]) != before {
		t.Error("strict merge modified the dataset")
	}
}

func TestWorkflow_ExternalEditResetsJournal(t *testing.T) {
	eng, fs, stateStore := setupTestEngine(t)
	ctx := context.Background()
	seed(t, fs)

	if _, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	// Another editor rewrites the file
	writeDataset(t, fs, datasettest.New(t,
		datasettest.Building(10, 0, 0, 2, 2),
		datasettest.Building(-5, 5, 5, 6, 6),
	))

	if _, err := eng.Undo(ctx, &engine.UndoRequest{Path: datasetPath}); !errors.Is(err, engine.ErrDatasetChanged) {
		t.Fatalf("expected ErrDatasetChanged, got %v", err)
	}

	status, err := eng.Status(ctx, &engine.StatusRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.InSync {
		t.Error("expected status to report the file out of sync")
	}

	loaded, err := eng.Load(ctx, &engine.LoadRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.Reset {
		t.Error("expected the journal to be reset")
	}
	st := stateStore.session(t)
	if len(st.Journal.Done) != 0 || len(st.Journal.Undone) != 0 {
		t.Errorf("expected empty journal, got %+v", st.Journal)
	}

	if _, err := eng.Undo(ctx, &engine.UndoRequest{Path: datasetPath}); !errors.Is(err, engine.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestWorkflow_MergeRehidesExistingBuildings(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()
	seed(t, fs)

	shown, err := eng.SetFilter(ctx, &engine.FilterRequest{Path: datasetPath, Enabled: false})
	if err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if shown.Filter.Enabled || shown.Counts.Hidden != 0 {
		t.Fatalf("expected existing buildings shown, got %+v", shown)
	}

	if _, err := eng.Merge(ctx, &engine.MergeRequest{Path: datasetPath}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	status, err := eng.Status(ctx, &engine.StatusRequest{Path: datasetPath})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.HasFilter || !status.Filter.Enabled {
		t.Errorf("expected the clean-slate filter back on, got %+v", status.Filter)
	}
	if status.Counts.Hidden != 2 {
		t.Errorf("expected 2 hidden buildings, got %d", status.Counts.Hidden)
	}
}
