package multiplayer

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

var (
	ErrUnavailable    = errors.New("match store not available")
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchFull      = errors.New("match already has two players")
	ErrNotParticipant = errors.New("wallet is not part of this match")
)

// Codes avoid ambiguous characters (0/O, 1/I/L). Eight random characters
// plus a three-character suffix give an 11-character shareable code; the
// space is large enough that collisions are left to the primary key.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateMatchCode() string {
	var b strings.Builder
	for i := 0; i < 11; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// Service coordinates 1v1 matches over the shared match table. Both players
// poll the same row; there is no persistent connection between them.
type Service struct {
	db    *gorm.DB
	local *localstore.Store
}

func NewService(db *gorm.DB, local *localstore.Store) *Service {
	return &Service{db: db, local: local}
}

func (s *Service) available() bool {
	return s.db != nil
}

// CreateMatch writes a waiting match row and returns its code. The creator's
// profile is upserted so the opponent sees a current username.
func (s *Service) CreateMatch(wallet, username string, difficulty puzzles.Difficulty, snapshot models.PuzzleSnapshot) (*models.MultiplayerMatch, error) {
	if !s.available() {
		return nil, ErrUnavailable
	}

	s.upsertProfile(wallet, username)

	match := models.MultiplayerMatch{
		MatchCode:       generateMatchCode(),
		PuzzleID:        fmt.Sprintf("mp-%d", time.Now().UnixMilli()),
		Difficulty:      string(difficulty),
		PuzzleData:      snapshot,
		Status:          models.MatchStatusWaiting,
		Player1Wallet:   wallet,
		Player1Username: username,
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	logger.Info().
		Str("matchCode", match.MatchCode).
		Str("difficulty", match.Difficulty).
		Msg("Match created")

	return &match, nil
}

// JoinMatch claims the open player2 slot with a single conditional update, so
// two simultaneous joiners cannot both win the seat. The loser is told the
// match is full.
func (s *Service) JoinMatch(code, wallet, username string) (*models.MultiplayerMatch, error) {
	if !s.available() {
		return nil, ErrUnavailable
	}

	s.upsertProfile(wallet, username)

	res := s.db.Model(&models.MultiplayerMatch{}).
		Where("match_code = ? AND player2_wallet IS NULL", code).
		Updates(map[string]interface{}{
			"player2_wallet":   wallet,
			"player2_username": username,
			"status":           models.MatchStatusInProgress,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to join match: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// Either the code is wrong or someone else took the seat.
		var existing models.MultiplayerMatch
		err := s.db.First(&existing, "match_code = ?", code).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrMatchFull
	}

	return s.GetMatch(code)
}

// GetMatch reads the current row for the code.
func (s *Service) GetMatch(code string) (*models.MultiplayerMatch, error) {
	if !s.available() {
		return nil, ErrUnavailable
	}

	var match models.MultiplayerMatch
	err := s.db.First(&match, "match_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// SubmitSolution records the wallet's result on its side of the match. Only
// the second submission flips the match to completed: "completed" means both
// results are known.
func (s *Service) SubmitSolution(code, wallet string, solved bool, remainingTime int) (*models.MultiplayerMatch, error) {
	match, err := s.GetMatch(code)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	switch {
	case match.Player1Wallet == wallet:
		updates["player1_solved"] = solved
		updates["player1_time"] = remainingTime
	case match.Player2Wallet != nil && *match.Player2Wallet == wallet:
		updates["player2_solved"] = solved
		updates["player2_time"] = remainingTime
		updates["status"] = models.MatchStatusCompleted
	default:
		return nil, ErrNotParticipant
	}

	err = s.db.Model(&models.MultiplayerMatch{}).
		Where("match_code = ?", code).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to submit solution: %w", err)
	}

	return s.GetMatch(code)
}

// SubmitSolutionOnce wraps SubmitSolution with a per-match-per-wallet local
// marker so retried completions are not resubmitted. The server write itself
// is not idempotent; the marker is the only guard.
func (s *Service) SubmitSolutionOnce(code, wallet string, solved bool, remainingTime int) (*models.MultiplayerMatch, error) {
	key := localstore.MatchSolvedKey(code, wallet)

	if s.local.Has(key) {
		return s.GetMatch(code)
	}

	match, err := s.SubmitSolution(code, wallet, solved, remainingTime)
	if err != nil {
		return nil, err
	}

	s.local.Set(key, true)
	return match, nil
}

// PlayerMatches lists the wallet's 50 most recent matches, newest first.
func (s *Service) PlayerMatches(wallet string) ([]models.MultiplayerMatch, error) {
	if !s.available() {
		return nil, ErrUnavailable
	}

	var matches []models.MultiplayerMatch
	err := s.db.
		Where("player1_wallet = ? OR player2_wallet = ?", wallet, wallet).
		Order("created_at DESC").
		Limit(50).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Service) upsertProfile(wallet, username string) {
	if wallet == "" {
		return
	}

	profile := models.UserProfile{
		WalletAddress: wallet,
		Username:      username,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		logger.Warn().Err(err).Msg("Profile upsert failed during match flow")
	}
}
