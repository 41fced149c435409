package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/game"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
)

type StartRoundInput struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// StartRound begins a round for the caller (anonymous play is allowed). The
// response carries the puzzle, the countdown and the mistake budget.
func StartRound(c *gin.Context) {
	var input StartRoundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	sess := gameManager.Session(walletAddr, usernameFor(walletAddr))

	view, err := sess.Start(c.Request.Context(), puzzles.Difficulty(input.Difficulty))
	if errors.Is(err, game.ErrUnknownDifficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start round"})
		return
	}

	c.JSON(http.StatusOK, view)
}

type SubmitCodeInput struct {
	Code string `json:"code" binding:"required"`
}

// SubmitCode evaluates the player's fix against the live round.
func SubmitCode(c *gin.Context) {
	var input SubmitCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	sess := gameManager.Session(walletAddr, "")

	correct, err := sess.Submit(c.Request.Context(), input.Code)
	if errors.Is(err, game.ErrNotPlaying) {
		c.JSON(http.StatusConflict, gin.H{"error": "No round in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correct": correct,
		"round":   sess.View(),
	})
}

// GetRound returns the current round snapshot.
func GetRound(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)
	c.JSON(http.StatusOK, gameManager.Session(walletAddr, "").View())
}

// AcknowledgeRound moves a finished round back to idle.
func AcknowledgeRound(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)
	sess := gameManager.Session(walletAddr, "")
	sess.Acknowledge()
	c.JSON(http.StatusOK, sess.View())
}

// QuitRound tears the session down, cancelling the countdown. Used when the
// player leaves the game screen.
func QuitRound(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)
	gameManager.Close(walletAddr)
	c.JSON(http.StatusOK, gin.H{"message": "Round closed"})
}

// GetStats returns the caller's durable statistics record.
func GetStats(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)
	if walletAddr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wallet required for statistics"})
		return
	}
	c.JSON(http.StatusOK, gameManager.Stats().Load(walletAddr))
}

// usernameFor resolves the display name for a wallet without failing the
// request when no profile exists yet.
func usernameFor(walletAddr string) string {
	if walletAddr == "" {
		return ""
	}
	profile, err := profiles.Get(walletAddr)
	if err != nil {
		return ""
	}
	return profile.Username
}
