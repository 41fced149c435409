package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/generator"
	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/ismailsvc/stellar-bomb-backend/internal/timers"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateSuccess State = "success"
	StateFail    State = "fail"
)

var (
	ErrNotPlaying        = errors.New("no round in progress")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Puzzle acquisition policy: two generator attempts, then the catalog. The
// backoffs are package vars so tests can shrink them.
var (
	generateAttempts = 2
	retryBackoff     = 1 * time.Second
	rateLimitBackoff = 3 * time.Second
)

// Generator is the external puzzle collaborator. It is best-effort: Start
// never depends on it succeeding.
type Generator interface {
	Generate(ctx context.Context, d puzzles.Difficulty) (*puzzles.Puzzle, error)
	Validate(ctx context.Context, userCode, starterCode, expectedOutput string) (bool, error)
}

// RemoteScores forwards winning entries to the cloud leaderboard. A nil sink
// (or one that errors) degrades the game to local-only scoring.
type RemoteScores interface {
	SaveScore(entry models.LeaderboardEntry) error
}

// RoundView is a read-only snapshot of the current round.
type RoundView struct {
	State             State              `json:"state"`
	Puzzle            *puzzles.Puzzle    `json:"puzzle,omitempty"`
	Difficulty        puzzles.Difficulty `json:"difficulty,omitempty"`
	RemainingSeconds  int                `json:"remaining_seconds"`
	MistakesRemaining int                `json:"mistakes_remaining"`
}

// Session is the per-player round state machine:
//
//	idle --Start--> playing --correct--> success
//	playing --incorrect(mistakes>0)--> playing (mistakes-1)
//	playing --incorrect(mistakes==0)--> fail
//	playing --time expires--> fail
//	success|fail --Acknowledge--> idle
//
// The 1-second countdown runs on a Repeater owned by the session; it is
// stopped on every terminal transition and on Close. Async completions
// (generator, validator) are re-checked against the round counter before they
// touch state, so a stale response can never resurrect a finished round.
type Session struct {
	mu sync.Mutex

	wallet   string
	username string

	gen    Generator
	stats  *StatsStore
	local  *localstore.Store
	remote RemoteScores

	state      State
	puzzle     *puzzles.Puzzle
	difficulty puzzles.Difficulty
	remaining  int
	mistakes   int

	round  uint64
	ticker *timers.Repeater
}

func NewSession(wallet, username string, gen Generator, stats *StatsStore, local *localstore.Store, remote RemoteScores) *Session {
	return &Session{
		wallet:   wallet,
		username: username,
		gen:      gen,
		stats:    stats,
		local:    local,
		remote:   remote,
		state:    StateIdle,
	}
}

// Start begins a new round. It always terminates with a playable puzzle: the
// generator gets generateAttempts tries (with a longer backoff after a rate
// limit), then a uniformly random catalog puzzle takes over.
func (s *Session) Start(ctx context.Context, d puzzles.Difficulty) (RoundView, error) {
	if !puzzles.ValidDifficulty(d) {
		return RoundView{}, ErrUnknownDifficulty
	}

	s.mu.Lock()
	s.stopTickerLocked()
	s.round++
	round := s.round
	s.state = StateIdle
	s.mu.Unlock()

	puzzle := s.acquirePuzzle(ctx, d)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round != round {
		// Another Start superseded this one while we were fetching.
		return s.viewLocked(), nil
	}

	s.puzzle = &puzzle
	s.difficulty = d
	s.remaining = TotalTimeByDifficulty[d]
	s.mistakes = MistakesByDifficulty[d]
	s.state = StatePlaying

	s.ticker = timers.Start(time.Second, false, func() { s.tick(round) })

	return s.viewLocked(), nil
}

func (s *Session) acquirePuzzle(ctx context.Context, d puzzles.Difficulty) puzzles.Puzzle {
	for i := 0; i < generateAttempts; i++ {
		p, err := s.gen.Generate(ctx, d)
		if err == nil && p != nil {
			return *p
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("Puzzle generation failed")

		if i < generateAttempts-1 {
			wait := retryBackoff
			if errors.Is(err, generator.ErrRateLimited) {
				wait = rateLimitBackoff
			}
			select {
			case <-ctx.Done():
				return puzzles.Random()
			case <-time.After(wait):
			}
		}
	}
	return puzzles.Random()
}

// tick decrements the countdown once per second. Hitting zero fails the round
// synchronously, with no grace period.
func (s *Session) tick(round uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round != round || s.state != StatePlaying {
		return
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.failLocked()
	}
}

// Submit evaluates the player's code. Submissions outside a live round are
// no-ops. Validator failures count as incorrect: the round fails closed on
// mistakes rather than open.
func (s *Session) Submit(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	if s.state != StatePlaying || s.puzzle == nil {
		s.mu.Unlock()
		return false, ErrNotPlaying
	}
	round := s.round
	puzzle := *s.puzzle
	s.mu.Unlock()

	var correct bool
	switch puzzle.Kind {
	case puzzles.KindCatalog:
		correct = puzzle.Check != nil && puzzle.Check(code)
	case puzzles.KindGenerated:
		ok, err := s.gen.Validate(ctx, code, puzzle.StarterCode, puzzle.ExpectedOutput)
		if err != nil {
			logger.Warn().Err(err).Str("puzzle", puzzle.ID).Msg("Validator unreachable, treating submission as incorrect")
		}
		correct = err == nil && ok
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stale-response guard: the countdown may have expired, or a new round
	// may have started, while the validator call was in flight.
	if s.round != round || s.state != StatePlaying {
		return false, ErrNotPlaying
	}

	if !correct {
		// Exhausting the budget is itself fatal, so a zero budget fails on
		// the first wrong answer.
		s.mistakes--
		if s.mistakes <= 0 {
			s.mistakes = 0
			s.failLocked()
		}
		return false, nil
	}

	s.succeedLocked()
	return true, nil
}

func (s *Session) failLocked() {
	s.state = StateFail
	s.stopTickerLocked()

	if s.wallet != "" {
		s.stats.Update(s.wallet, 0, false, s.difficulty)
	}
}

func (s *Session) succeedLocked() {
	s.state = StateSuccess
	s.stopTickerLocked()

	entry := models.LeaderboardEntry{
		WalletAddress: s.wallet,
		Username:      s.username,
		PuzzleTitle:   s.puzzle.Title,
		Difficulty:    string(s.difficulty),
		RemainingTime: s.remaining,
		Points:        RankedScore(s.remaining, s.difficulty),
		Avatar:        s.selectedCosmetic(localstore.KeySelectedAvatar, "👨‍💻"),
		SelectedFrame: s.selectedCosmetic(localstore.KeySelectedFrame, "frame-none"),
		CreatedAt:     time.Now(),
	}

	s.appendLocalEntry(entry)

	if s.wallet != "" {
		s.stats.Update(s.wallet, s.remaining, true, s.difficulty)

		if s.remote != nil {
			if err := s.remote.SaveScore(entry); err != nil {
				logger.Warn().Err(err).Msg("Cloud leaderboard write failed, keeping local entry only")
			}
		}
	}
}

const localLeaderboardCap = 20

// appendLocalEntry prepends the entry to the local leaderboard, keeping the
// 20 most recent.
func (s *Session) appendLocalEntry(entry models.LeaderboardEntry) {
	var list []models.LeaderboardEntry
	s.local.Get(localstore.KeyLocalLeaderboard, &list)

	list = append([]models.LeaderboardEntry{entry}, list...)
	if len(list) > localLeaderboardCap {
		list = list[:localLeaderboardCap]
	}
	s.local.Set(localstore.KeyLocalLeaderboard, list)
}

func (s *Session) selectedCosmetic(key, fallback string) string {
	var v string
	if ok, err := s.local.Get(key, &v); err == nil && ok && v != "" {
		return v
	}
	return fallback
}

// Acknowledge returns a finished round to idle. Calling it mid-round is a
// no-op so a double click cannot abort a live game.
func (s *Session) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSuccess || s.state == StateFail {
		s.state = StateIdle
		s.puzzle = nil
		s.remaining = 0
		s.mistakes = 0
	}
}

// Close cancels timers and resets to idle, used when the player leaves the
// game screen or logs out.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round++
	s.stopTickerLocked()
	s.state = StateIdle
	s.puzzle = nil
}

func (s *Session) stopTickerLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// View returns a snapshot of the round.
func (s *Session) View() RoundView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() RoundView {
	return RoundView{
		State:             s.state,
		Puzzle:            s.puzzle,
		Difficulty:        s.difficulty,
		RemainingSeconds:  s.remaining,
		MistakesRemaining: s.mistakes,
	}
}
