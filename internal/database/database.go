package database

import (
	"log"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the Postgres row store. An empty DATABASE_URL leaves DB nil:
// the game stays playable from local state only, and every cloud write
// degrades to a no-op (checked via Available).
func Connect() {
	dsn := config.AppConfig.DatabaseURL
	if dsn == "" {
		log.Println("DATABASE_URL not set - running in local-only mode, cloud leaderboard and multiplayer disabled")
		return
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v - continuing in local-only mode", err)
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get underlying sql.DB: %v - continuing in local-only mode", err)
		return
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	DB = db
	log.Println("Connected to PostgreSQL with connection pooling (max: 25, idle: 10)")
}

// Available reports whether the row store is reachable enough to try writes.
func Available() bool {
	return DB != nil
}
