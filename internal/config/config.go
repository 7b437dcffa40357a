// Package config loads bot configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/turkeydev/gamesbot/internal/words"
)

// Config holds all runtime configuration
type Config struct {
	// Token is the bot token used to authenticate with the gateway
	Token string `env:"GAMESBOT_TOKEN"`

	// HTTPAddr is the listen address of the status API
	HTTPAddr string `env:"GAMESBOT_HTTP_ADDR" envDefault:":8080"`

	// BlunderChance is the denominator of the computer opponent's mistake
	// probability: 1-in-N moves is random. 1 always blunders, 0 disables
	// blunders entirely.
	BlunderChance int `env:"GAMESBOT_BLUNDER_CHANCE" envDefault:"5"`

	// WordAPIURL is the random word endpoint used by content-generating games
	WordAPIURL string `env:"GAMESBOT_WORD_API_URL"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"GAMESBOT_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	cfg := Config{WordAPIURL: words.DefaultURL}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BlunderChance < 0 {
		return Config{}, fmt.Errorf("blunder chance must not be negative, got %d", cfg.BlunderChance)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog level
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
