package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SlackConfig struct {
	BotToken           string
	SigningSecret      string
	BroadcastChannelID string
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.SigningSecret != "" &&
		c.BroadcastChannelID != ""
}

type TelegramConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Telegram configuration is present
func (c TelegramConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string

	// Similarity threshold for approximate product-name matching
	FuzzyMatchThreshold float64

	SlackConfig    SlackConfig
	TelegramConfig TelegramConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	threshold, err := strconv.ParseFloat(getEnvWithDefault("FUZZY_MATCH_THRESHOLD", "0.72"), 64)
	if err != nil {
		return nil, fmt.Errorf("FUZZY_MATCH_THRESHOLD must be a number: %w", err)
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("FUZZY_MATCH_THRESHOLD must be in (0, 1], got %v", threshold)
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),

		FuzzyMatchThreshold: threshold,

		SlackConfig: SlackConfig{
			BotToken:           os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret:      os.Getenv("SLACK_SIGNING_SECRET"),
			BroadcastChannelID: os.Getenv("SLACK_BROADCAST_CHANNEL_ID"),
		},

		TelegramConfig: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
	}

	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack integration configured")
	} else {
		return nil, fmt.Errorf("slack integration is not fully configured")
	}

	if config.TelegramConfig.IsConfigured() {
		log.Printf("✅ Telegram integration configured")
	} else {
		return nil, fmt.Errorf("telegram integration is not fully configured")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
