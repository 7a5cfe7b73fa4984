package storage

import (
	"os"
	"testing"

	"github.com/varekai/netchess/internal/testutil"
)

// openTestStorage opens a throwaway database under a temp directory.
func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "netchess-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openTestStorage(t)

	t.Run("DefaultsWhenEmpty", func(t *testing.T) {
		prefs, err := s.LoadPreferences()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, prefs.PlayerName, "Player")
		if !prefs.SoundEnabled {
			t.Error("sound should be enabled by default")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		prefs := DefaultPreferences()
		prefs.PlayerName = "Magnus"
		prefs.SoundEnabled = false
		prefs.DialAddr = "example.com:7777"
		testutil.AssertNoError(t, s.SavePreferences(prefs))

		loaded, err := s.LoadPreferences()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, loaded.PlayerName, "Magnus")
		testutil.AssertEqual(t, loaded.SoundEnabled, false)
		testutil.AssertEqual(t, loaded.DialAddr, "example.com:7777")
	})
}

func TestStats(t *testing.T) {
	s := openTestStorage(t)

	results := []Result{ResultWin, ResultWin, ResultLoss, ResultDraw, ResultWin, ResultResigned}
	for _, r := range results {
		testutil.AssertNoError(t, s.RecordResult(r))
	}

	stats, err := s.LoadStats()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, stats.GamesPlayed, 6)
	testutil.AssertEqual(t, stats.Wins, 3)
	testutil.AssertEqual(t, stats.Losses, 2)
	testutil.AssertEqual(t, stats.Draws, 1)
	testutil.AssertEqual(t, stats.Resignations, 1)
	testutil.AssertEqual(t, stats.LongestWinStrk, 2)
	testutil.AssertEqual(t, stats.CurrentStreak, 0)
	testutil.AssertEqual(t, stats.WinRate(), 50.0)
}

func TestSavedGame(t *testing.T) {
	s := openTestStorage(t)

	t.Run("EmptyAtFirst", func(t *testing.T) {
		saved, err := s.LoadSavedGame()
		testutil.AssertNoError(t, err)
		if saved != nil {
			t.Errorf("expected no saved game, got %+v", saved)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		in := &SavedGame{
			StartFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			Moves:    []string{"e2e4", "e7e5", "g1f3"},
		}
		testutil.AssertNoError(t, s.SaveGame(in))

		saved, err := s.LoadSavedGame()
		testutil.AssertNoError(t, err)
		if saved == nil {
			t.Fatal("saved game missing after SaveGame")
		}
		testutil.AssertEqual(t, saved.StartFEN, in.StartFEN)
		testutil.AssertEqual(t, saved.Moves, in.Moves)
		if saved.SavedAt.IsZero() {
			t.Error("SavedAt should be stamped on save")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		testutil.AssertNoError(t, s.ClearSavedGame())
		saved, err := s.LoadSavedGame()
		testutil.AssertNoError(t, err)
		if saved != nil {
			t.Error("saved game should be gone after clear")
		}
	})
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
