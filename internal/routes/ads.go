package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
)

func RegisterAdRoutes(r gin.IRouter) {
	r.GET("", handlers.GetAd)
	r.POST("/:id/impression", handlers.RecordAdImpression)
	r.POST("/:id/click", handlers.RecordAdClick)
	r.GET("/:id/analytics", handlers.GetAdAnalytics)
}
