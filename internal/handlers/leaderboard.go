package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

// GetGlobalLeaderboard serves the cloud ranking. With no database the list
// is empty, never an error.
func GetGlobalLeaderboard(c *gin.Context) {
	entries, err := leaderboard.GlobalLeaderboard()
	if err != nil {
		logger.Error().Err(err).Msg("Leaderboard read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetLocalLeaderboard serves the 20 most recent local wins.
func GetLocalLeaderboard(c *gin.Context) {
	var entries []models.LeaderboardEntry
	if _, err := local.Get(localstore.KeyLocalLeaderboard, &entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load local leaderboard"})
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetUserScores lists one wallet's score history.
func GetUserScores(c *gin.Context) {
	walletAddr := c.Param("wallet")
	if !utils.IsWalletAddress(walletAddr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
		return
	}

	entries, err := leaderboard.UserScores(walletAddr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
