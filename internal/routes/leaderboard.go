package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
)

func RegisterLeaderboardRoutes(r gin.IRouter) {
	r.GET("/global", handlers.GetGlobalLeaderboard)
	r.GET("/local", handlers.GetLocalLeaderboard)
	r.GET("/user/:wallet", handlers.GetUserScores)
}
