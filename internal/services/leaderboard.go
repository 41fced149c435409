package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ismailsvc/stellar-bomb-backend/internal/database"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

const (
	leaderboardCacheTTL = 30 * time.Second
	leaderboardLimit    = 100
)

// LeaderboardService owns the global leaderboard table. Every method
// tolerates a missing database: writes become no-ops and reads come back
// empty, leaving the game on its local leaderboard.
type LeaderboardService struct {
	db *gorm.DB

	mu       sync.RWMutex
	cached   []models.LeaderboardEntry
	cachedAt time.Time
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// SaveScore appends one winning entry. Implements the score sink the game
// session writes through after a success.
func (s *LeaderboardService) SaveScore(entry models.LeaderboardEntry) error {
	if s.db == nil {
		return nil
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return err
	}

	s.mu.Lock()
	s.cachedAt = time.Time{}
	s.mu.Unlock()

	database.CacheInvalidate("leaderboard:global")
	return nil
}

// GlobalLeaderboard returns the top entries ordered by points. Reads go
// memory cache, then redis, then the table.
func (s *LeaderboardService) GlobalLeaderboard() ([]models.LeaderboardEntry, error) {
	if s.db == nil {
		return []models.LeaderboardEntry{}, nil
	}

	s.mu.RLock()
	if time.Since(s.cachedAt) < leaderboardCacheTTL && s.cached != nil {
		entries := s.cached
		s.mu.RUnlock()
		return entries, nil
	}
	s.mu.RUnlock()

	var cached []models.LeaderboardEntry
	if err := database.CacheGet("leaderboard:global", &cached); err == nil {
		s.remember(cached)
		return cached, nil
	}

	var entries []models.LeaderboardEntry
	err := s.db.
		Order("points DESC").
		Limit(leaderboardLimit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	s.remember(entries)

	if err := database.CacheSet("leaderboard:global", entries, leaderboardCacheTTL); err != nil {
		logger.Debug().Err(err).Msg("Leaderboard redis cache write failed")
	}

	return entries, nil
}

func (s *LeaderboardService) remember(entries []models.LeaderboardEntry) {
	s.mu.Lock()
	s.cached = entries
	s.cachedAt = time.Now()
	s.mu.Unlock()
}

// UserScores lists one wallet's entries, newest first.
func (s *LeaderboardService) UserScores(wallet string) ([]models.LeaderboardEntry, error) {
	if s.db == nil {
		return []models.LeaderboardEntry{}, nil
	}

	var entries []models.LeaderboardEntry
	err := s.db.
		Where("wallet_address = ?", wallet).
		Order("created_at DESC").
		Limit(50).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
