package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ismailsvc/stellar-bomb-backend/internal/ads"
	"github.com/ismailsvc/stellar-bomb-backend/internal/config"
	"github.com/ismailsvc/stellar-bomb-backend/internal/database"
	"github.com/ismailsvc/stellar-bomb-backend/internal/game"
	"github.com/ismailsvc/stellar-bomb-backend/internal/generator"
	"github.com/ismailsvc/stellar-bomb-backend/internal/handlers"
	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/middleware"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/multiplayer"
	"github.com/ismailsvc/stellar-bomb-backend/internal/routes"
	"github.com/ismailsvc/stellar-bomb-backend/internal/services"
	"github.com/ismailsvc/stellar-bomb-backend/internal/session"
	"github.com/ismailsvc/stellar-bomb-backend/internal/stellar"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Stellar Bomb Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect storage. The database is optional: without it the game runs
	// in local-only mode (no cloud leaderboard, no multiplayer).
	database.Connect()
	database.InitRedis()

	if database.Available() {
		logger.Info().Msg("🔄 Running Database Migrations...")
		tableModels := []interface{}{
			&models.UserProfile{},
			&models.LeaderboardEntry{},
			&models.MultiplayerMatch{},
			&models.AvatarPurchase{},
			&models.FramePurchase{},
			&models.Advertisement{},
			&models.AdAnalytic{},
		}
		if err := database.DB.AutoMigrate(tableModels...); err != nil {
			logger.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		logger.Info().Msg("✅ Database Migrations Complete")
	}

	store, err := localstore.Open(config.AppConfig.LocalStateDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open local state store")
	}

	// 2. Wire services
	puzzleCache := generator.NewCache(store)
	aiClient := generator.NewClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.OpenAIModel, puzzleCache)

	horizon := stellar.NewHorizonClient(config.AppConfig.HorizonURL)
	ledger := stellar.NewSorobanLedger(config.AppConfig.SessionContractID)

	leaderboardSvc := services.NewLeaderboardService(database.DB)
	profileSvc := services.NewProfileService(database.DB, store)
	shopSvc := services.NewShopService(database.DB, store, horizon, profileSvc)
	matchSvc := multiplayer.NewService(database.DB, store)
	sessionMgr := session.NewManager(store, ledger)
	gameMgr := game.NewManager(aiClient, store, leaderboardSvc)

	adSvc := ads.NewService(database.DB)
	if err := adSvc.LoadAds(); err != nil {
		logger.Warn().Err(err).Msg("Ad inventory load failed, serving without ads")
	}

	handlers.Init(handlers.Deps{
		Game:        gameMgr,
		Sessions:    sessionMgr,
		Matches:     matchSvc,
		Leaderboard: leaderboardSvc,
		Profiles:    profileSvc,
		Shop:        shopSvc,
		Ads:         adSvc,
		Wallet:      horizon,
		Local:       store,
	})

	// 3. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// 4. Register Routes
	api := r.Group("/api")
	{
		routes.RegisterAuthRoutes(api.Group("/auth"))
		routes.RegisterGameRoutes(api.Group("/game"))
		routes.RegisterLeaderboardRoutes(api.Group("/leaderboard"))
		routes.RegisterMatchRoutes(api.Group("/matches"))
		routes.RegisterProfileRoutes(api.Group("/profiles"))
		routes.RegisterShopRoutes(api.Group("/shop"))
		routes.RegisterAdRoutes(api.Group("/ads"))
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if !database.Available() {
			dbStatus = "not configured"
		} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		redisStatus := "ok"
		if database.Redis == nil {
			redisStatus = "not configured"
		} else if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
			redisStatus = "error"
		}

		status := "ok"
		if dbStatus == "error" || redisStatus == "error" {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "Stellar Bomb Backend is running 💣",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("🛑 Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Persist any ad counters gathered since the last flush.
	if err := adSvc.Flush(); err != nil {
		logger.Warn().Err(err).Msg("Ad analytics flush failed")
	}

	logger.Info().Msg("✅ Server exited gracefully")
}
