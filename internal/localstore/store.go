package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a small JSON key-value store backed by one file per key. It plays
// the role the browser's localStorage plays for the game client: local
// leaderboard, per-wallet stats, cached profiles, the puzzle cache, the
// session record and per-match submission markers all live here.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Well-known keys. Kept identical to the client-side layout so state written
// by either side stays interchangeable.
const (
	KeyLocalLeaderboard = "stellarBombLeaderboard"
	KeyPuzzleCache      = "ai_puzzle_cache"
	KeySavedWallets     = "savedWallets"
	KeySelectedAvatar   = "selectedAvatar"
	KeySelectedFrame    = "selectedFrame"
	KeySession          = "stellar_bomb_session"
)

func ProfileKey(wallet string) string {
	return "profile_" + wallet
}

func StatsKey(wallet string) string {
	return "stats_" + wallet
}

func MatchSolvedKey(matchCode, wallet string) string {
	return "match_solved_" + matchCode + "_" + wallet
}

// Open creates the backing directory if needed.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("localstore: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	// Keys contain only wallet addresses, match codes and fixed names, but
	// sanitize separators anyway.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

// Get unmarshals the value for key into dest. The boolean reports whether the
// key existed.
func (s *Store) Get(key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set writes the value synchronously. Round resolution depends on this being
// durable before the call returns.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Has reports whether a key exists without decoding it.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path(key))
	return err == nil
}
