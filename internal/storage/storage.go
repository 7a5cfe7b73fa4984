package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keySavedGame   = "saved_game"
)

// Preferences stores user settings.
type Preferences struct {
	PlayerName   string    `json:"player_name"`
	SoundEnabled bool      `json:"sound_enabled"`
	ListenAddr   string    `json:"listen_addr"`
	DialAddr     string    `json:"dial_addr"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *Preferences {
	return &Preferences{
		PlayerName:   "Player",
		SoundEnabled: true,
		ListenAddr:   ":7777",
		DialAddr:     "localhost:7777",
		LastPlayed:   time.Now(),
	}
}

// Stats stores lifetime game statistics.
type Stats struct {
	GamesPlayed    int `json:"games_played"`
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	Draws          int `json:"draws"`
	Resignations   int `json:"resignations"`
	CurrentStreak  int `json:"current_streak"`
	LongestWinStrk int `json:"longest_win_streak"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{}
}

// WinRate returns the win rate as a percentage (0-100).
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// Result is the outcome of one completed game from the local player's
// point of view.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultResigned // the local player resigned
)

// SavedGame is the single resumable game: its starting position and the
// coordinate-text move list. Replaying the moves through the engine
// reconstructs the full state; a record that no longer resolves to a
// legal move aborts the resume instead of corrupting state.
type SavedGame struct {
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	SavedAt  time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the per-OS user data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in the given directory. Tests use this with a
// temporary directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats saves game statistics.
func (s *Storage) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordResult records a completed game and updates statistics.
func (s *Storage) RecordResult(result Result) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++

	switch result {
	case ResultWin:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
	case ResultDraw:
		stats.Draws++
		stats.CurrentStreak = 0
	case ResultResigned:
		stats.Resignations++
		stats.Losses++
		stats.CurrentStreak = 0
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// SaveGame stores the resumable game, replacing any previous one.
func (s *Storage) SaveGame(saved *SavedGame) error {
	saved.SavedAt = time.Now()

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySavedGame), data)
	})
}

// LoadSavedGame returns the saved game, or nil when there is none.
func (s *Storage) LoadSavedGame() (*SavedGame, error) {
	var saved *SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySavedGame))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			saved = &SavedGame{}
			return json.Unmarshal(val, saved)
		})
	})

	return saved, err
}

// ClearSavedGame removes the saved game, if any.
func (s *Storage) ClearSavedGame() error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(keySavedGame))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}
