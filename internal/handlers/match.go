package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/multiplayer"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

type CreateMatchInput struct {
	Difficulty string                 `json:"difficulty" binding:"required"`
	Puzzle     *models.PuzzleSnapshot `json:"puzzle"`
}

// CreateMatch opens a 1v1 match. Without an explicit puzzle snapshot a
// catalog puzzle of the requested difficulty is frozen into the match so both
// players solve the same thing.
func CreateMatch(c *gin.Context) {
	var input CreateMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := puzzles.Difficulty(input.Difficulty)
	if !puzzles.ValidDifficulty(d) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
		return
	}

	snapshot := models.PuzzleSnapshot{}
	if input.Puzzle != nil {
		snapshot = *input.Puzzle
	} else {
		p := puzzles.RandomByDifficulty(d)
		snapshot = models.PuzzleSnapshot{
			Title:          p.Title,
			Description:    p.Description,
			StarterCode:    p.StarterCode,
			ExpectedOutput: p.ExpectedOutput,
		}
	}

	walletAddr := middleware.WalletFromContext(c)
	match, err := matches.CreateMatch(walletAddr, usernameFor(walletAddr), d, snapshot)
	if errors.Is(err, multiplayer.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Multiplayer requires the match store"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Match creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
		return
	}

	c.JSON(http.StatusCreated, match)
}

type JoinMatchInput struct {
	MatchCode string `json:"match_code" binding:"required"`
}

// JoinMatch claims the open seat in a match.
func JoinMatch(c *gin.Context) {
	var input JoinMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	match, err := matches.JoinMatch(input.MatchCode, walletAddr, usernameFor(walletAddr))
	switch {
	case errors.Is(err, multiplayer.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	case errors.Is(err, multiplayer.ErrMatchFull):
		c.JSON(http.StatusConflict, gin.H{"error": "Match is full"})
		return
	case errors.Is(err, multiplayer.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Multiplayer requires the match store"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join match"})
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetMatch is the polling read both players use to observe the shared row.
func GetMatch(c *gin.Context) {
	match, err := matches.GetMatch(c.Param("code"))
	if errors.Is(err, multiplayer.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load match"})
		return
	}
	c.JSON(http.StatusOK, match)
}

type SubmitResultInput struct {
	MatchCode     string `json:"match_code" binding:"required"`
	Solved        *bool  `json:"solved" binding:"required"`
	RemainingTime int    `json:"remaining_time"`
}

// SubmitMatchResult records the caller's finish. A local per-match marker
// keeps retried submissions from overwriting the recorded time.
func SubmitMatchResult(c *gin.Context) {
	var input SubmitResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	match, err := matches.SubmitSolutionOnce(input.MatchCode, walletAddr, *input.Solved, input.RemainingTime)
	switch {
	case errors.Is(err, multiplayer.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	case errors.Is(err, multiplayer.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this match"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit result"})
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetMatchResult is one poll iteration of the result comparison: it returns
// the win/lose verdict once the opponent has finished, otherwise a pending
// flag. The caller supplies its own remaining time via query parameter.
func GetMatchResult(c *gin.Context) {
	selfTime, err := strconv.Atoi(c.DefaultQuery("time", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time parameter"})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	result, err := matches.Result(c.Param("code"), walletAddr, selfTime)
	if errors.Is(err, multiplayer.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load result"})
		return
	}

	if result == nil {
		c.JSON(http.StatusOK, gin.H{"pending": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": false, "result": result})
}

// GetMyMatches lists the caller's recent matches.
func GetMyMatches(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)
	list, err := matches.PlayerMatches(walletAddr)
	if errors.Is(err, multiplayer.ErrUnavailable) {
		c.JSON(http.StatusOK, gin.H{"matches": []models.MultiplayerMatch{}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load matches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": list})
}
