package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
	"github.com/ismailsvc/stellar-bomb-backend/internal/services"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

// GetMyProfile returns the authenticated player's profile.
func GetMyProfile(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)

	profile, err := profiles.Get(walletAddr)
	if errors.Is(err, services.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile returns any wallet's public profile.
func GetProfile(c *gin.Context) {
	walletAddr := c.Param("wallet")
	if !utils.IsWalletAddress(walletAddr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
		return
	}

	profile, err := profiles.Get(walletAddr)
	if errors.Is(err, services.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile edits username, bio or photo.
func UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	profile, err := profiles.Update(walletAddr, input)
	if errors.Is(err, services.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type SelectCosmeticInput struct {
	Avatar string `json:"avatar"`
	Frame  string `json:"frame"`
}

// SelectCosmetic changes the worn avatar and/or frame. Ownership is checked
// against the profile's purchase history.
func SelectCosmetic(c *gin.Context) {
	var input SelectCosmeticInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Avatar == "" && input.Frame == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to select"})
		return
	}

	walletAddr := middleware.WalletFromContext(c)

	if input.Avatar != "" {
		if _, err := profiles.SelectAvatar(walletAddr, input.Avatar); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if input.Frame != "" {
		if _, err := profiles.SelectFrame(walletAddr, input.Frame); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	profile, err := profiles.Get(walletAddr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
