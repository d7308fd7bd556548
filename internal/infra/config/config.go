package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	APIToken string `envconfig:"API_TOKEN" required:"true"`
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	ChatID   int64  `envconfig:"CHAT_ID" required:"true"`

	Endpoint            string        `envconfig:"ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	RetryInterval       time.Duration `envconfig:"RETRY_INTERVAL" default:"600s"`
	HTTPTimeout         time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	EmptyAdvancesCursor bool          `envconfig:"EMPTY_ADVANCES_CURSOR" default:"true"`
	BotCommandsEnabled  bool          `envconfig:"BOT_COMMANDS_ENABLED" default:"true"`

	DatabaseURL string `envconfig:"DATABASE_URL"` // empty means in-memory state

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	Environment   string `envconfig:"ENVIRONMENT" default:"development"`
	LogFile       string `envconfig:"LOG_FILE" default:"bot.log"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	// envconfig accepts a variable that is set but empty.
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, fmt.Errorf("API_TOKEN is not set")
	}
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("CHAT_ID is not set")
	}
	if cfg.RetryInterval <= 0 {
		return nil, fmt.Errorf("RETRY_INTERVAL must be positive, got %s", cfg.RetryInterval)
	}
	if cfg.RetryInterval%time.Second != 0 {
		return nil, fmt.Errorf("RETRY_INTERVAL must be a whole number of seconds, got %s", cfg.RetryInterval)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	return cfg, nil
}
