package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/connect", middleware.AuthRateLimit(), handlers.ConnectWallet)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	r.GET("/session", handlers.GetSession)
	r.POST("/session/extend", middleware.AuthMiddleware(), handlers.ExtendSession)
}
