package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
)

func RegisterShopRoutes(r gin.IRouter) {
	r.GET("/catalog", handlers.GetShopCatalog)
	r.GET("/balance", middleware.AuthMiddleware(), handlers.GetBalance)
	r.POST("/avatars", middleware.AuthMiddleware(), handlers.PurchaseAvatar)
	r.POST("/frames", middleware.AuthMiddleware(), handlers.PurchaseFrame)
	r.GET("/purchases", middleware.AuthMiddleware(), handlers.GetPurchases)
}
