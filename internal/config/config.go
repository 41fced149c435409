package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Redis
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Puzzle generator (OpenAI)
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	// Stellar
	HorizonURL        string `mapstructure:"HORIZON_URL"`
	SessionContractID string `mapstructure:"SOROBAN_CONTRACT_ID"`
	ShopWallet        string `mapstructure:"SHOP_WALLET"`

	// Local state (the localStorage analogue)
	LocalStateDir string `mapstructure:"LOCAL_STATE_DIR"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if AppConfig.OpenAIModel == "" {
		AppConfig.OpenAIModel = "gpt-3.5-turbo"
	}
	if AppConfig.LocalStateDir == "" {
		AppConfig.LocalStateDir = ".state"
	}
}
