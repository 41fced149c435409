package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
)

func RegisterProfileRoutes(r gin.IRouter) {
	r.GET("/me", middleware.AuthMiddleware(), handlers.GetMyProfile)
	r.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateProfile)
	r.POST("/me/cosmetics", middleware.AuthMiddleware(), handlers.SelectCosmetic)
	r.GET("/:wallet", handlers.GetProfile)
}
