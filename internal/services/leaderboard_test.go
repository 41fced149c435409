package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
)

const (
	scoreWalletA = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	scoreWalletB = "GBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
)

func newLeaderboardTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LeaderboardEntry{}))
	return db
}

func entry(wallet, username string, points int, createdAt time.Time) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		WalletAddress: wallet,
		Username:      username,
		PuzzleTitle:   "Toplama",
		Difficulty:    "medium",
		RemainingTime: 12,
		Points:        points,
		Avatar:        "👨‍💻",
		SelectedFrame: "frame-none",
		CreatedAt:     createdAt,
	}
}

func TestSaveScoreAndGlobalLeaderboard(t *testing.T) {
	s := NewLeaderboardService(newLeaderboardTestDB(t))
	now := time.Now()

	require.NoError(t, s.SaveScore(entry(scoreWalletA, "alice", 320, now)))
	require.NoError(t, s.SaveScore(entry(scoreWalletB, "bob", 650, now)))
	require.NoError(t, s.SaveScore(entry(scoreWalletA, "alice", 210, now)))

	entries, err := s.GlobalLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 650, entries[0].Points)
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, 320, entries[1].Points)
	assert.Equal(t, 210, entries[2].Points)
}

func TestGlobalLeaderboard_MemoryCacheRefreshesAfterSave(t *testing.T) {
	s := NewLeaderboardService(newLeaderboardTestDB(t))
	now := time.Now()

	require.NoError(t, s.SaveScore(entry(scoreWalletA, "alice", 100, now)))

	entries, err := s.GlobalLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// A new score invalidates the memory cache even inside the TTL window.
	require.NoError(t, s.SaveScore(entry(scoreWalletB, "bob", 900, now)))

	entries, err = s.GlobalLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].Username)
}

func TestUserScores(t *testing.T) {
	s := NewLeaderboardService(newLeaderboardTestDB(t))
	now := time.Now()

	require.NoError(t, s.SaveScore(entry(scoreWalletA, "alice", 100, now.Add(-2*time.Hour))))
	require.NoError(t, s.SaveScore(entry(scoreWalletA, "alice", 300, now)))
	require.NoError(t, s.SaveScore(entry(scoreWalletB, "bob", 500, now)))

	scores, err := s.UserScores(scoreWalletA)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	// Newest first.
	assert.Equal(t, 300, scores[0].Points)
	assert.Equal(t, 100, scores[1].Points)
}

func TestLeaderboard_NoDatabase(t *testing.T) {
	s := NewLeaderboardService(nil)

	assert.NoError(t, s.SaveScore(entry(scoreWalletA, "alice", 100, time.Now())))

	entries, err := s.GlobalLeaderboard()
	require.NoError(t, err)
	assert.Empty(t, entries)

	scores, err := s.UserScores(scoreWalletA)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
