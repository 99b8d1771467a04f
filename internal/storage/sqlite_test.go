package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/mole-arcade/internal/mole"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testJournal(t *testing.T, seed int64, encoded string) mole.Journal {
	t.Helper()
	events, err := mole.DecodeEvents(encoded)
	if err != nil {
		t.Fatalf("DecodeEvents() failed: %v", err)
	}
	return mole.Journal{
		Config: mole.Config{
			CountdownSeconds: 3,
			SessionSeconds:   5,
			Bounds:           mole.Bounds{SurfaceW: 80, SurfaceH: 22, TargetW: 9, TargetH: 4},
		},
		Seed:   seed,
		Events: events,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreSaveAndFind(t *testing.T) {
	store := openTestStore(t)
	j := testJournal(t, 77, "TTTSSTTTTTS")

	final, err := mole.Replay(j)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	id, err := store.SaveRun(j, final)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.FindRun(id)
	if err != nil {
		t.Fatalf("FindRun() failed: %v", err)
	}
	if run.Score != 2 || run.Seed != 77 || run.Events != "TTTSSTTTTTS" {
		t.Errorf("run = %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	back, err := run.Journal()
	if err != nil {
		t.Fatalf("Journal() failed: %v", err)
	}
	replayed, err := mole.Replay(back)
	if err != nil {
		t.Fatalf("Replay() of stored journal failed: %v", err)
	}
	if replayed != final {
		t.Errorf("stored journal replays to %+v, expected %+v", replayed, final)
	}
}

func TestStoreFindByPrefix(t *testing.T) {
	store := openTestStore(t)
	j := testJournal(t, 1, "TTT")

	id, err := store.SaveRun(j, mole.Snapshot{})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.FindRun(id[:8])
	if err != nil {
		t.Fatalf("FindRun(prefix) failed: %v", err)
	}
	if run.ID != id {
		t.Errorf("FindRun(prefix) = %s, expected %s", run.ID, id)
	}

	if _, err := store.FindRun("does-not-exist"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FindRun(missing) error = %v, expected ErrRunNotFound", err)
	}
	if _, err := store.FindRun(""); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FindRun(\"\") error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreFindRunLiteralPrefix(t *testing.T) {
	store := openTestStore(t)
	j := testJournal(t, 1, "TTT")

	id, err := store.SaveRun(j, mole.Snapshot{})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	tests := []string{"%", "_", "%%", "________", id[:4] + "%", "_" + id[1:8]}
	for _, prefix := range tests {
		t.Run(prefix, func(t *testing.T) {
			run, err := store.FindRun(prefix)
			if !errors.Is(err, ErrRunNotFound) {
				t.Errorf("FindRun(%q) = %v, %v, expected ErrRunNotFound", prefix, run, err)
			}
		})
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.SaveRun(testJournal(t, int64(i), strings.Repeat("T", i)), mole.Snapshot{Score: i})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if runs[0].ID != ids[4] || runs[2].ID != ids[2] {
		t.Errorf("unexpected order: %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)
	id, _ := store.SaveRun(testJournal(t, 1, "T"), mole.Snapshot{})

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if err := store.DeleteRun(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second DeleteRun() error = %v, expected ErrRunNotFound", err)
	}
	if _, err := store.FindRun(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FindRun() after delete error = %v", err)
	}
}

func TestRunJournalRejectsCorruptEvents(t *testing.T) {
	run := Run{ID: "x", Events: "TQ"}
	if _, err := run.Journal(); !errors.Is(err, mole.ErrBadJournal) {
		t.Errorf("Journal() error = %v, expected ErrBadJournal", err)
	}
}
