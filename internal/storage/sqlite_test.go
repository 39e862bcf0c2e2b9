package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestCompletions(t *testing.T) {
	store := openTestStore(t)

	saves := []Completion{
		{Collection: "starter", Level: 1, Ticks: 9, Board: "1/8,5/0,0-3,4/9x1MR20x1E9x"},
		{Collection: "starter", Level: 1, Ticks: 4, Board: "1/8,5/0,0-3,4/40x"},
		{Collection: "starter", Level: 3, Ticks: 12, Board: "1/8,5/0,0-3,4/40x"},
		{Collection: "intermediate", Level: 1, Ticks: 30, Board: "1/8,5/0,0-3,4/40x"},
	}
	for _, c := range saves {
		if _, err := store.SaveCompletion(c); err != nil {
			t.Fatalf("SaveCompletion() failed: %v", err)
		}
	}

	best, ok, err := store.BestCompletion("starter", 1)
	if err != nil || !ok {
		t.Fatalf("BestCompletion() = %v, %v", ok, err)
	}
	if best.Ticks != 4 {
		t.Errorf("best ticks = %d, want 4", best.Ticks)
	}
	if best.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	if _, ok, err := store.BestCompletion("starter", 2); err != nil || ok {
		t.Errorf("BestCompletion(unsolved) = %v, %v", ok, err)
	}

	list, err := store.Completions("starter", 0)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d completions, want 3", len(list))
	}
	if list[0].Ticks != 4 || list[2].Level != 3 {
		t.Errorf("unexpected order: %+v", list)
	}

	all, err := store.Completions("", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("limit ignored: got %d", len(all))
	}

	done, err := store.CompletedLevels("starter")
	if err != nil {
		t.Fatal(err)
	}
	if !done[1] || !done[3] || done[2] {
		t.Errorf("CompletedLevels() = %v", done)
	}
}

func TestSaveCompletionRejectsInvalid(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveCompletion(Completion{Collection: "starter", Level: 0}); err == nil {
		t.Error("SaveCompletion() expected error for level 0")
	}
}

func TestCollectionStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetCollectionStats("starter")
	if err != nil {
		t.Fatalf("GetCollectionStats() failed: %v", err)
	}
	if empty.Completions != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, ticks := range []int{7, 3} {
		if _, err := store.SaveCompletion(Completion{Collection: "starter", Level: 2, Ticks: ticks, Board: "b"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveCompletion(Completion{Collection: "duke-nukem", Level: 1, Ticks: 5, Board: "b"}); err != nil {
		t.Fatal(err)
	}

	stats, err := store.GetCollectionStats("starter")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Completions != 2 || stats.LevelsSolved != 1 || stats.FewestTicks != 3 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := store.GetAllCollectionStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all["duke-nukem"].Completions != 1 {
		t.Errorf("GetAllCollectionStats() = %v", all)
	}

	if err := store.ClearProgress("starter"); err != nil {
		t.Fatal(err)
	}
	done, _ := store.CompletedLevels("starter")
	if len(done) != 0 {
		t.Errorf("progress not cleared: %v", done)
	}
	done, _ = store.CompletedLevels("duke-nukem")
	if !done[1] {
		t.Error("ClearProgress() removed another collection")
	}
}

func TestBoards(t *testing.T) {
	store := openTestStore(t)
	const first = "1/3,1/0,0-2,0/1MR1x1E"
	const second = "1/3,1/0,0-2,0/2x1E"

	if err := store.SaveBoard("demo", first); err != nil {
		t.Fatalf("SaveBoard() failed: %v", err)
	}
	if err := store.SaveBoard("demo", second); err != nil {
		t.Fatalf("SaveBoard() upsert failed: %v", err)
	}
	if err := store.SaveBoard("another", first); err != nil {
		t.Fatal(err)
	}

	b, err := store.LoadBoard("demo")
	if err != nil {
		t.Fatalf("LoadBoard() failed: %v", err)
	}
	if b.Board != second {
		t.Errorf("Board = %s, want %s", b.Board, second)
	}

	list, err := store.ListBoards()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "another" {
		t.Errorf("ListBoards() = %+v", list)
	}

	if err := store.DeleteBoard("demo"); err != nil {
		t.Fatalf("DeleteBoard() failed: %v", err)
	}
	if _, err := store.LoadBoard("demo"); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("LoadBoard(deleted) error = %v, want ErrBoardNotFound", err)
	}
	if err := store.DeleteBoard("demo"); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("DeleteBoard(missing) error = %v, want ErrBoardNotFound", err)
	}
}

func TestSaveBoardValidates(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveBoard("bad", "1/2,2/0,0-0,0/9x"); err == nil {
		t.Error("SaveBoard() expected error for invalid board")
	}
	if err := store.SaveBoard("", "1/1,1/0,0-0,0/1x"); err == nil {
		t.Error("SaveBoard() expected error for empty name")
	}
}
