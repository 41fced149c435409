package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
	"github.com/ismailsvc/stellar-bomb-backend/internal/stellar"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

type ConnectWalletInput struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	Username      string `json:"username"`
}

// ConnectWallet is the login flow: the browser connects the wallet extension,
// then posts the address here. We upsert the profile, issue an API token and
// save the continuity session (with its best-effort chain mirror).
func ConnectWallet(c *gin.Context) {
	var input ConnectWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsWalletAddress(input.WalletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Stellar wallet address"})
		return
	}

	profile, err := profiles.Upsert(input.WalletAddress, input.Username)
	if err != nil {
		logger.Error().Err(err).Msg("Profile upsert failed on connect")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	token, err := utils.GenerateToken(input.WalletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	rec := sessions.Save(input.WalletAddress, profile.Username)

	logger.Info().
		Str("wallet", utils.MaskAddress(input.WalletAddress)).
		Bool("chainVerified", rec.ChainVerified).
		Msg("Wallet connected")

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"profile": profile,
		"session": rec,
	})
}

// Logout clears the continuity session and tears down any live round.
func Logout(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)

	sessions.Clear()
	gameManager.Close(walletAddr)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession reports the stored continuity session, for the auto-reconnect
// flow on page load. Expired or chain-invalid sessions read as absent.
func GetSession(c *gin.Context) {
	rec := sessions.Get()
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	if !sessions.VerifyWithBlockchain(*rec) {
		sessions.Clear()
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	remaining := stellar.RemainingTime(rec.ExpiresAt().Unix())
	c.JSON(http.StatusOK, gin.H{
		"session":        rec,
		"remaining":      stellar.FormatRemaining(remaining),
		"chain_verified": rec.ChainVerified,
	})
}

// ExtendSession resets the 7-day validity window.
func ExtendSession(c *gin.Context) {
	rec := sessions.Extend()
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": rec})
}
