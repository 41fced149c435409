package multiplayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
)

func shrinkPollIntervals(t *testing.T) {
	t.Helper()
	oldJoin, oldResult := JoinPollInterval, ResultPollInterval
	JoinPollInterval = 5 * time.Millisecond
	ResultPollInterval = 5 * time.Millisecond
	t.Cleanup(func() {
		JoinPollInterval = oldJoin
		ResultPollInterval = oldResult
	})
}

func TestWatchJoin_FiresOnceWithOpponentName(t *testing.T) {
	shrinkPollIntervals(t)
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)

	joined := make(chan string, 4)
	rep := s.WatchJoin(created.MatchCode, func(opponent string) {
		joined <- opponent
	})
	defer rep.Stop()

	// No opponent yet.
	select {
	case name := <-joined:
		t.Fatalf("premature join callback with %q", name)
	case <-time.After(30 * time.Millisecond):
	}

	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	select {
	case name := <-joined:
		assert.Equal(t, "bob", name)
	case <-time.After(time.Second):
		t.Fatal("join callback never fired")
	}

	// The poller stops itself after the first hit.
	select {
	case <-joined:
		t.Fatal("join callback fired twice")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestResult_PendingUntilOpponentFinishes(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Medium, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	result, err := s.Result(created.MatchCode, walletA, 10)
	require.NoError(t, err)
	assert.Nil(t, result, "no result until the opponent has a time on record")

	_, err = s.SubmitSolution(created.MatchCode, walletB, true, 7)
	require.NoError(t, err)

	result, err = s.Result(created.MatchCode, walletA, 10)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 10, result.PlayerTime)
	assert.Equal(t, 7, result.OpponentTime)
}

func TestResult_MoreRemainingTimeWins(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Hard, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)
	_, err = s.SubmitSolution(created.MatchCode, walletB, true, 12)
	require.NoError(t, err)

	result, err := s.Result(created.MatchCode, walletA, 9)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.PlayerWon, "9s beats the opponent's 12s")

	result, err = s.Result(created.MatchCode, walletA, 15)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.PlayerWon)
}

func TestResult_TieGoesToOpponent(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)
	_, err = s.SubmitSolution(created.MatchCode, walletB, true, 10)
	require.NoError(t, err)

	result, err := s.Result(created.MatchCode, walletA, 10)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.PlayerWon)
}

func TestWatchResult_FiresWhenOpponentSubmits(t *testing.T) {
	shrinkPollIntervals(t)
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Medium, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)

	results := make(chan MatchResult, 4)
	rep := s.WatchResult(created.MatchCode, walletA, 14, func(r MatchResult) {
		results <- r
	})
	defer rep.Stop()

	_, err = s.SubmitSolution(created.MatchCode, walletB, true, 6)
	require.NoError(t, err)

	select {
	case r := <-results:
		assert.Equal(t, 14, r.PlayerTime)
		assert.Equal(t, 6, r.OpponentTime)
		assert.True(t, r.PlayerWon)
	case <-time.After(time.Second):
		t.Fatal("result callback never fired")
	}

	select {
	case <-results:
		t.Fatal("result callback fired twice")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestOpponentOutcome_PerspectiveSwap(t *testing.T) {
	s := newTestService(t)

	created, err := s.CreateMatch(walletA, "alice", puzzles.Easy, testSnapshot())
	require.NoError(t, err)
	_, err = s.JoinMatch(created.MatchCode, walletB, "bob")
	require.NoError(t, err)
	_, err = s.SubmitSolution(created.MatchCode, walletA, true, 11)
	require.NoError(t, err)

	match, err := s.GetMatch(created.MatchCode)
	require.NoError(t, err)

	// From player2's side, the opponent is player1.
	solved, opponentTime, ok := opponentOutcome(match, walletB)
	assert.True(t, ok)
	assert.True(t, solved)
	assert.Equal(t, 11, opponentTime)

	// From player1's side, player2 has not finished.
	_, _, ok = opponentOutcome(match, walletA)
	assert.False(t, ok)
}
