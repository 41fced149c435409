package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
)

// Game routes allow anonymous play: authentication is optional, and only
// statistics require a wallet.
func RegisterGameRoutes(r gin.IRouter) {
	r.POST("/start", middleware.OptionalAuthMiddleware(), middleware.GameRateLimit(), handlers.StartRound)
	r.POST("/submit", middleware.OptionalAuthMiddleware(), middleware.GameRateLimit(), handlers.SubmitCode)
	r.GET("/round", middleware.OptionalAuthMiddleware(), handlers.GetRound)
	r.POST("/acknowledge", middleware.OptionalAuthMiddleware(), handlers.AcknowledgeRound)
	r.POST("/quit", middleware.OptionalAuthMiddleware(), handlers.QuitRound)
	r.GET("/stats", middleware.AuthMiddleware(), handlers.GetStats)
}
