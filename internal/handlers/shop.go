package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
	"github.com/ismailsvc/stellar-bomb-backend/internal/services"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

// GetShopCatalog lists purchasable avatars and frames with XLM prices.
func GetShopCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"avatars": services.AvatarCatalog,
		"frames":  services.FrameCatalog,
	})
}

// GetBalance proxies the caller's native balance from Horizon.
func GetBalance(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)

	balance, err := wallet.GetBalance(c.Request.Context(), walletAddr)
	if err != nil {
		logger.Warn().Err(err).Msg("Balance lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

type PurchaseInput struct {
	Item          string `json:"item" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
}

// PurchaseAvatar records an avatar purchase after the client has paid.
func PurchaseAvatar(c *gin.Context) {
	var input PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	profile, err := shop.PurchaseAvatar(c.Request.Context(), walletAddr, input.Item, input.TransactionID)
	if err != nil {
		respondPurchaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PurchaseFrame records a frame purchase after the client has paid.
func PurchaseFrame(c *gin.Context) {
	var input PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walletAddr := middleware.WalletFromContext(c)
	profile, err := shop.PurchaseFrame(c.Request.Context(), walletAddr, input.Item, input.TransactionID)
	if err != nil {
		respondPurchaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetPurchases lists the caller's purchase receipts.
func GetPurchases(c *gin.Context) {
	walletAddr := middleware.WalletFromContext(c)

	avatars, frames, err := shop.Purchases(walletAddr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load purchases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatars": avatars, "frames": frames})
}

func respondPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, services.ErrItemFree):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Free items cannot be purchased"})
	case errors.Is(err, services.ErrAlreadyOwned):
		c.JSON(http.StatusConflict, gin.H{"error": "Item already owned"})
	case errors.Is(err, services.ErrPaymentInvalid):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment could not be verified"})
	default:
		logger.Error().Err(err).Msg("Purchase failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
	}
}
