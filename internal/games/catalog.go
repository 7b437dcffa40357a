// Package games declares the closed set of supported game types and how to
// construct each one.
package games

import (
	"github.com/turkeydev/gamesbot/internal/dependencies/random"
	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/games/hangman"
	"github.com/turkeydev/gamesbot/internal/games/tictactoe"
)

// Deps holds everything any game constructor may need
type Deps struct {
	Random        random.Random
	Words         hangman.WordSource
	BlunderChance int
}

// Entry describes one game type: its command, listing metadata, and a
// constructor for fresh instances
type Entry struct {
	Command     string
	Title       string
	Emoji       string
	Description string
	Multiplayer bool
	New         func() engine.Logic
}

// Catalog returns the supported games keyed in presentation order
func Catalog(deps Deps) []Entry {
	return []Entry{
		{
			Command:     string(hangman.Identity),
			Title:       "Hangman",
			Emoji:       "🅰️",
			Description: "Play Hangman",
			Multiplayer: false,
			New:         func() engine.Logic { return hangman.New(deps.Words) },
		},
		{
			Command:     string(tictactoe.Identity),
			Title:       "Tic-Tac-Toe",
			Emoji:       "❌",
			Description: "Play Tic-Tac-Toe",
			Multiplayer: true,
			New:         func() engine.Logic { return tictactoe.New(deps.Random, deps.BlunderChance) },
		},
	}
}
