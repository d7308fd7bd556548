package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredVars = []string{"API_TOKEN", "BOT_TOKEN", "CHAT_ID"}

func setRequired(t *testing.T) {
	t.Setenv("API_TOKEN", "api-token")
	t.Setenv("BOT_TOKEN", "123:bot-token")
	t.Setenv("CHAT_ID", "987654")
}

// unset removes a variable for the rest of the test; t.Setenv restores it afterwards.
func unset(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"ENDPOINT", "RETRY_INTERVAL", "HTTP_TIMEOUT", "EMPTY_ADVANCES_CURSOR", "DATABASE_URL", "LOG_LEVEL", "ENVIRONMENT", "LOG_FILE"} {
		unset(t, k)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "api-token", cfg.APIToken)
	assert.Equal(t, int64(987654), cfg.ChatID)
	assert.Equal(t, "https://practicum.yandex.ru/api/user_api/homework_statuses/", cfg.Endpoint)
	assert.Equal(t, 600*time.Second, cfg.RetryInterval)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.EmptyAdvancesCursor)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "bot.log", cfg.LogFile)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RETRY_INTERVAL", "30s")
	t.Setenv("EMPTY_ADVANCES_CURSOR", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RetryInterval)
	assert.False(t, cfg.EmptyAdvancesCursor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, missing := range requiredVars {
		t.Run("unset "+missing, func(t *testing.T) {
			setRequired(t)
			unset(t, missing)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
		t.Run("empty "+missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoad_InvalidChatID(t *testing.T) {
	setRequired(t)
	t.Setenv("CHAT_ID", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAT_ID")
}

func TestLoad_NonPositiveInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("RETRY_INTERVAL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RETRY_INTERVAL")
}

func TestLoad_SubSecondInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("RETRY_INTERVAL", "1500ms")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number of seconds")
}
