package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/hexfront/internal/core"
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

func match(id, mode, winner string, turns int, created int64) Match {
	return Match{
		MatchID:     id,
		Mode:        mode,
		Seed:        42,
		Winner:      winner,
		EndReason:   "elimination",
		BlueScore:   4,
		RedScore:    2,
		Turns:       turns,
		CreatedUnix: created,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(match("m-1", "hexfront", "BLUE", 7, 1000))
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveMatch() id = %d", id)
	}

	got, err := store.MatchByID("m-1")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil")
	}
	want := match("m-1", "hexfront", "BLUE", 7, 1000)
	want.ID = id
	if *got != want {
		t.Errorf("MatchByID() = %+v, expected %+v", *got, want)
	}
	if !got.CreatedAt().Equal(time.Unix(1000, 0)) {
		t.Errorf("CreatedAt() = %v", got.CreatedAt())
	}

	missing, err := store.MatchByID("nope")
	if err != nil || missing != nil {
		t.Errorf("MatchByID(nope) = %v, %v", missing, err)
	}
}

func TestStoreSaveDefaultsTimestamp(t *testing.T) {
	store := openTestStore(t)

	before := time.Now().Unix()
	if _, err := store.SaveMatch(match("m-1", "hexfront", "RED", 3, 0)); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	got, _ := store.MatchByID("m-1")
	if got.CreatedUnix < before {
		t.Errorf("CreatedUnix = %d, expected >= %d", got.CreatedUnix, before)
	}
}

func TestStoreDuplicateMatchID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatch(match("m-1", "hexfront", "BLUE", 5, 1)); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := store.SaveMatch(match("m-1", "hexfront", "RED", 5, 2)); err == nil {
		t.Error("a match ID must only be stored once")
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		mode := "hexfront"
		if i%2 == 1 {
			mode = "hexfront_demo"
		}
		if _, err := store.SaveMatch(match(id, mode, "BLUE", 5, int64(100+i))); err != nil {
			t.Fatalf("SaveMatch(%s) failed: %v", id, err)
		}
	}

	all, err := store.RecentMatches("", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(all))
	}
	if all[0].MatchID != "e" || all[1].MatchID != "d" || all[2].MatchID != "c" {
		t.Errorf("matches not newest first: %s %s %s", all[0].MatchID, all[1].MatchID, all[2].MatchID)
	}

	demo, err := store.RecentMatches("hexfront_demo", 0)
	if err != nil {
		t.Fatalf("RecentMatches(demo) failed: %v", err)
	}
	if len(demo) != 2 {
		t.Errorf("Expected 2 demo matches, got %d", len(demo))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	// Empty database
	stats, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Matches != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", stats)
	}

	store.SaveMatch(match("a", "hexfront", "BLUE", 4, 10))
	store.SaveMatch(match("b", "hexfront", "RED", 8, 20))
	store.SaveMatch(match("c", "hexfront", "BLUE", 6, 30))
	store.SaveMatch(match("d", "hexfront", "NONE", 200, 40))
	store.SaveMatch(match("e", "hexfront_demo", "RED", 2, 50))

	stats, err = store.Stats("hexfront")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Matches != 4 || stats.BlueWins != 2 || stats.RedWins != 1 || stats.Unfinished != 1 {
		t.Errorf("Stats(hexfront) = %+v", stats)
	}
	if stats.AvgTurns != 54.5 {
		t.Errorf("AvgTurns = %v, expected 54.5", stats.AvgTurns)
	}
	if !stats.LastPlayed.Equal(time.Unix(40, 0)) {
		t.Errorf("LastPlayed = %v", stats.LastPlayed)
	}

	all, _ := store.Stats("")
	if all.Matches != 5 || all.RedWins != 2 {
		t.Errorf("Stats(all) = %+v", all)
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(match("a", "hexfront", "BLUE", 4, 10))
	store.SaveMatch(match("b", "hexfront_demo", "RED", 4, 20))

	if err := store.ClearMatches("hexfront"); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	left, _ := store.RecentMatches("", 10)
	if len(left) != 1 || left[0].Mode != "hexfront_demo" {
		t.Errorf("clearing one mode should leave the other, got %+v", left)
	}

	store.ClearMatches("")
	left, _ = store.RecentMatches("", 10)
	if len(left) != 0 {
		t.Errorf("Expected empty table, got %d rows", len(left))
	}
}

func TestMatchFromResult(t *testing.T) {
	r := core.MatchResult{
		MatchID:   "abc",
		Mode:      "hexfront",
		Seed:      9,
		Winner:    "RED",
		Reason:    "capture",
		BlueScore: 2,
		RedScore:  6,
		Turns:     11,
	}

	m := MatchFromResult(r)
	if m.MatchID != "abc" || m.EndReason != "capture" || m.RedScore != 6 || m.Turns != 11 || m.CreatedUnix != 0 {
		t.Errorf("MatchFromResult() = %+v", m)
	}
}
