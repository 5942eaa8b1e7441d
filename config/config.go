package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the bot reads from the environment.
type Config struct {
	// BotToken is the Telegram bot API token.
	BotToken string

	// PostgresURL is the database connection string.
	PostgresURL string

	// AdminToken is the shared secret accepted by /auth to register a
	// new admin.
	AdminToken string

	// MetricsAddr is the listen address of the metrics server.
	MetricsAddr string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if present, so local runs do not
// need exported variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.PostgresURL == "" {
		return Config{}, fmt.Errorf("POSTGRES_URL is required")
	}
	if cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required")
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":9090"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
