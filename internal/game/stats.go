package game

import (
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
)

// PlayerStats is the durable per-wallet aggregate record. Counts only ever
// grow; totalGames is always recomputed as successful + failed.
type PlayerStats struct {
	TotalGames       int    `json:"totalGames"`
	SuccessfulGames  int    `json:"successfulGames"`
	FailedGames      int    `json:"failedGames"`
	BestScore        int    `json:"bestScore"`
	AverageScore     int    `json:"averageScore"`
	TotalTime        int    `json:"totalTime"`
	EasySuccessful   int    `json:"easySuccessful"`
	MediumSuccessful int    `json:"mediumSuccessful"`
	HardSuccessful   int    `json:"hardSuccessful"`
	LastUpdated      string `json:"lastUpdated"`
}

func defaultStats() PlayerStats {
	return PlayerStats{LastUpdated: time.Now().Format(time.RFC3339)}
}

// StatsStore persists PlayerStats in the local key-value store, synchronously
// after every round resolution.
type StatsStore struct {
	store *localstore.Store
}

func NewStatsStore(store *localstore.Store) *StatsStore {
	return &StatsStore{store: store}
}

// Load returns a zeroed record when the wallet has never played.
func (s *StatsStore) Load(wallet string) PlayerStats {
	stats := defaultStats()
	ok, err := s.store.Get(localstore.StatsKey(wallet), &stats)
	if err != nil || !ok {
		return defaultStats()
	}
	return stats
}

// Update applies one round resolution. remainingSeconds is the time left at
// the moment of success; it feeds bestScore (running max) and averageScore
// (cumulative total / successful games). Failures only bump failedGames.
func (s *StatsStore) Update(wallet string, remainingSeconds int, success bool, d puzzles.Difficulty) PlayerStats {
	stats := s.Load(wallet)

	if success {
		stats.SuccessfulGames++
		if remainingSeconds > stats.BestScore {
			stats.BestScore = remainingSeconds
		}
		stats.TotalTime += remainingSeconds
		stats.AverageScore = stats.TotalTime / stats.SuccessfulGames

		switch d {
		case puzzles.Easy:
			stats.EasySuccessful++
		case puzzles.Medium:
			stats.MediumSuccessful++
		case puzzles.Hard:
			stats.HardSuccessful++
		}
	} else {
		stats.FailedGames++
	}

	// Invariant: never incremented independently.
	stats.TotalGames = stats.SuccessfulGames + stats.FailedGames
	stats.LastUpdated = time.Now().Format(time.RFC3339)

	s.store.Set(localstore.StatsKey(wallet), stats)
	return stats
}
