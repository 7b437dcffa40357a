// Package factory wires the application graph together.
package factory

import (
	"errors"
	"log/slog"

	"github.com/turkeydev/gamesbot/internal/dependencies/clock"
	"github.com/turkeydev/gamesbot/internal/dependencies/random"
	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/games"
	"github.com/turkeydev/gamesbot/internal/games/hangman"
	"github.com/turkeydev/gamesbot/internal/registry"
	"github.com/turkeydev/gamesbot/internal/router"
)

// Config holds everything needed to build the application
type Config struct {
	Transport     discord.Transport
	Words         hangman.WordSource
	BlunderChance int
	Logger        *slog.Logger

	// Clock and Random default to the real implementations when nil
	Clock  clock.Clock
	Random random.Random
}

// App is the assembled application graph
type App struct {
	Registry *registry.Registry
	Router   *router.Router
	Catalog  []games.Entry
}

// New builds the application from the given config
func New(cfg Config) (*App, error) {
	if cfg.Transport == nil {
		return nil, errors.New("transport is required")
	}
	if cfg.Words == nil {
		return nil, errors.New("word source is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Random == nil {
		cfg.Random = random.New()
	}

	catalog := games.Catalog(games.Deps{
		Random:        cfg.Random,
		Words:         cfg.Words,
		BlunderChance: cfg.BlunderChance,
	})

	reg := registry.New(cfg.Logger)
	rt := router.New(reg, cfg.Transport, catalog, cfg.Clock, cfg.Logger)

	return &App{
		Registry: reg,
		Router:   rt,
		Catalog:  catalog,
	}, nil
}
