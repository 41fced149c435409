package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
)

func RegisterMatchRoutes(r gin.IRouter) {
	r.POST("", middleware.AuthMiddleware(), handlers.CreateMatch)
	r.POST("/join", middleware.AuthMiddleware(), handlers.JoinMatch)
	r.POST("/result", middleware.AuthMiddleware(), handlers.SubmitMatchResult)
	r.GET("/mine", middleware.AuthMiddleware(), handlers.GetMyMatches)

	// Polling reads, limited separately from the general API
	r.GET("/:code", middleware.PollRateLimit(), handlers.GetMatch)
	r.GET("/:code/result", middleware.AuthMiddleware(), middleware.PollRateLimit(), handlers.GetMatchResult)
}
