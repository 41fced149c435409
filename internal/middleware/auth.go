package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if !utils.IsWalletAddress(claims.Wallet) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token carries no valid wallet"})
			c.Abort()
			return
		}

		// Set wallet in context for handlers to use
		c.Set("wallet", claims.Wallet)
		c.Next()
	}
}

// OptionalAuthMiddleware attempts to validate the token if present, but does
// NOT abort if missing or invalid. Anonymous play is allowed; the wallet is
// set in context only when validation succeeds.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("wallet", claims.Wallet)
		c.Next()
	}
}

// WalletFromContext returns the authenticated wallet, or "" for anonymous
// requests.
func WalletFromContext(c *gin.Context) string {
	if v, ok := c.Get("wallet"); ok {
		if wallet, ok := v.(string); ok {
			return wallet
		}
	}
	return ""
}
