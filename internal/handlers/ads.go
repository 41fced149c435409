package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/ads"
)

// GetAd serves one ad for a placement. Strategy "random" rotates uniformly;
// anything else picks by priority.
func GetAd(c *gin.Context) {
	placement := c.Query("placement")
	if placement == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "placement query parameter required"})
		return
	}

	var ad interface{}
	if c.Query("strategy") == "random" {
		ad = adService.SelectRandom(placement)
	} else {
		ad = adService.SelectByPriority(placement)
	}

	c.JSON(http.StatusOK, gin.H{"ad": ad})
}

// RecordAdImpression counts one render of the ad.
func RecordAdImpression(c *gin.Context) {
	adService.RecordImpression(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// RecordAdClick counts one click on the ad.
func RecordAdClick(c *gin.Context) {
	adService.RecordClick(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetAdAnalytics reports the in-memory counters for one ad.
func GetAdAnalytics(c *gin.Context) {
	analytics, err := adService.Analytics(c.Param("id"))
	if errors.Is(err, ads.ErrAdNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No analytics for this ad"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
