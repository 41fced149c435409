package multiplayer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
)

const (
	walletA = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	walletB = "GBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	walletC = "GCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MultiplayerMatch{}, &models.UserProfile{}))

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	return NewService(db, store)
}

func testSnapshot() models.PuzzleSnapshot {
	return models.PuzzleSnapshot{
		Title:          "Toplama",
		Description:    "Fix the sum",
		StarterCode:    "function sum(a,b){return a-b;}",
		ExpectedOutput: "8",
	}
}

func TestCreateMatch(t *testing.T) {
	s := newTestService(t)

	match, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)

	assert.Len(t, match.MatchCode, 11)
	for _, r := range match.MatchCode {
		assert.Contains(t, codeAlphabet, string(r))
	}

	assert.Equal(t, models.MatchStatusWaiting, match.Status)
	assert.Equal(t, walletA, match.Player1Wallet)
	assert.Equal(t, "alice", match.Player1Username)
	assert.Nil(t, match.Player2Wallet)
	assert.Equal(t, "Toplama", match.PuzzleData.Title)
}

func TestCreateMatch_UpsertsProfile(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateMatch(walletA, "alice", puzzles.Medium, testSnapshot())
	require.NoError(t, err)

	var profile models.UserProfile
	require.NoError(t, s.db.First(&profile, "wallet_address = ?", walletA).Error)
	assert.Equal(t, "alice", profile.Username)
}

func TestJoinMatch(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)

	joined, err := s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusInProgress, joined.Status)
	require.NotNil(t, joined.Player2Wallet)
	assert.Equal(t, walletB, *joined.Player2Wallet)
	require.NotNil(t, joined.Player2Username)
	assert.Equal(t, "bob", *joined.Player2Username)
}

func TestJoinMatch_FullDoesNotOverwritePlayer2(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)

	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	_, err = s.JoinMatch(created.MatchCode, walletC, "carol")
	assert.ErrorIs(t, err, ErrMatchFull)

	match, err := s.GetMatch(created.MatchCode)
	require.NoError(t, err)
	require.NotNil(t, match.Player2Wallet)
	assert.Equal(t, walletB, *match.Player2Wallet, "seat must stay with the first joiner")
}

func TestJoinMatch_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.JoinMatch("NOSUCHCODE1", walletB, "bob")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitSolution_OnlySecondSubmitterCompletes(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Medium, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	// Player1 finishing first does not close the match.
	match, err := s.SubmitSolution(created.MatchCode, walletA, true, 12)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusInProgress, match.Status)
	require.NotNil(t, match.Player1Solved)
	assert.True(t, *match.Player1Solved)
	require.NotNil(t, match.Player1Time)
	assert.Equal(t, 12, *match.Player1Time)

	// Player2's submission does.
	match, err = s.SubmitSolution(created.MatchCode, walletB, true, 9)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	require.NotNil(t, match.Player2Time)
	assert.Equal(t, 9, *match.Player2Time)
}

func TestSubmitSolution_NotParticipant(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)

	_, err = s.SubmitSolution(created.MatchCode, walletC, true, 5)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSubmitSolutionOnce_MarkerBlocksResubmission(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	_, err = s.SubmitSolutionOnce(created.MatchCode, walletA, true, 20)
	require.NoError(t, err)

	// A retried completion must not overwrite the recorded time.
	match, err := s.SubmitSolutionOnce(created.MatchCode, walletA, true, 3)
	require.NoError(t, err)
	require.NotNil(t, match.Player1Time)
	assert.Equal(t, 20, *match.Player1Time)
}

func TestPlayerMatches(t *testing.T) {
	s := newTestService(t)

	m1, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)
	m2, err := s.CreateMatch(walletB, "bob", puzzles.Hard, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(m2.MatchCode, walletA, "alice")
	require.NoError(t, err)

	list, err := s.PlayerMatches(walletA)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	codes := []string{list[0].MatchCode, list[1].MatchCode}
	assert.Contains(t, codes, m1.MatchCode)
	assert.Contains(t, codes, m2.MatchCode)

	list, err = s.PlayerMatches(walletC)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_NoDatabase(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	s := NewService(nil, store)

	_, err = s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.GetMatch("ANYCODE1234")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateMatchCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := generateMatchCode()
		assert.Len(t, code, 11)
		assert.False(t, strings.ContainsAny(code, "0O1IL"), "ambiguous characters are excluded")
		seen[code] = true
	}
	assert.Greater(t, len(seen), 190, "codes should essentially never collide")
}
