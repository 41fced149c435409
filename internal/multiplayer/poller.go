package multiplayer

import (
	"sync"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/timers"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

// Poll cadences. Vars so tests can shrink them.
var (
	JoinPollInterval   = 1000 * time.Millisecond
	ResultPollInterval = 500 * time.Millisecond
)

// MatchResult compares both finishing times from one player's perspective.
// PlayerWon follows the strictly-less rule; an exact tie goes to the
// opponent.
type MatchResult struct {
	PlayerTime   int  `json:"player_time"`
	OpponentTime int  `json:"opponent_time"`
	PlayerWon    bool `json:"player_won"`
}

// WatchJoin polls the match until player2 appears, then invokes onJoined with
// the opponent's username and stops. The first check runs immediately, before
// the first interval elapses. Stop the returned repeater to abandon the wait.
func (s *Service) WatchJoin(code string, onJoined func(opponent string)) *timers.Repeater {
	var once sync.Once

	return timers.StartSelf(JoinPollInterval, true, func(rep *timers.Repeater) {
		match, err := s.GetMatch(code)
		if err != nil {
			logger.Debug().Err(err).Str("matchCode", code).Msg("Join poll failed")
			return
		}
		if match.Player2Wallet == nil {
			return
		}

		once.Do(func() {
			name := ""
			if match.Player2Username != nil {
				name = *match.Player2Username
			}
			onJoined(name)
			rep.Stop()
		})
	})
}

// Result compares both finishes from selfWallet's perspective once the
// opponent's solved flag and time are on record. A nil result with nil error
// means the opponent has not finished yet.
func (s *Service) Result(code, selfWallet string, selfTime int) (*MatchResult, error) {
	match, err := s.GetMatch(code)
	if err != nil {
		return nil, err
	}

	solved, opponentTime, ok := opponentOutcome(match, selfWallet)
	if !ok || !solved {
		return nil, nil
	}

	return &MatchResult{
		PlayerTime:   selfTime,
		OpponentTime: opponentTime,
		PlayerWon:    selfTime < opponentTime,
	}, nil
}

// WatchResult polls the match for the opponent's finish once the local player
// has a time on record. When the opponent's result appears, the comparison
// fires once and polling stops. There is no automatic timeout: if the
// opponent never finishes, the caller decides when to give up.
func (s *Service) WatchResult(code, selfWallet string, selfTime int, onResult func(MatchResult)) *timers.Repeater {
	var once sync.Once

	return timers.StartSelf(ResultPollInterval, false, func(rep *timers.Repeater) {
		result, err := s.Result(code, selfWallet, selfTime)
		if err != nil {
			logger.Debug().Err(err).Str("matchCode", code).Msg("Result poll failed")
			return
		}
		if result == nil {
			return
		}

		once.Do(func() {
			onResult(*result)
			rep.Stop()
		})
	})
}

// opponentOutcome picks the other player's solved flag and time relative to
// the given wallet. ok is false until both fields are populated.
func opponentOutcome(match *models.MultiplayerMatch, selfWallet string) (solved bool, remainingTime int, ok bool) {
	var solvedPtr *bool
	var timePtr *int

	if match.Player1Wallet == selfWallet {
		solvedPtr, timePtr = match.Player2Solved, match.Player2Time
	} else {
		solvedPtr, timePtr = match.Player1Solved, match.Player1Time
	}

	if solvedPtr == nil || timePtr == nil {
		return false, 0, false
	}
	return *solvedPtr, *timePtr, true
}
