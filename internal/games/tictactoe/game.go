// Package tictactoe implements the button-driven tic-tac-toe game with a
// minimax computer opponent.
package tictactoe

import (
	"context"
	"fmt"
	"strconv"

	"github.com/turkeydev/gamesbot/internal/dependencies/random"
	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/model"
)

const (
	// Identity is the game's command name and uniqueness tag
	Identity model.GameIdentity = "tictactoe"

	// DefaultBlunderChance gives the computer a 1-in-5 chance of playing a
	// random move instead of searching
	DefaultBlunderChance = 5

	embedColor    = 0xab0e0e
	boardImageURL = "https://api.theturkey.dev/discordgames/gentictactoeboard"
)

// Game holds one tic-tac-toe board and its computer opponent
type Game struct {
	board  Board
	search *Search
}

// Ensure Game implements the contract
var _ engine.Logic = (*Game)(nil)

// New creates a tic-tac-toe game. blunderChance is the denominator of the
// computer's mistake probability; see Search.
func New(rnd random.Random, blunderChance int) *Game {
	return &Game{
		search: NewSearch(rnd, blunderChance),
	}
}

// Descriptor declares tic-tac-toe as a button-driven game that supports a
// second player
func (g *Game) Descriptor() engine.Descriptor {
	return engine.Descriptor{
		Identity:            Identity,
		SupportsMultiplayer: true,
		Mode:                engine.ButtonDriven,
	}
}

// Setup clears the board
func (g *Game) Setup(ctx context.Context) error {
	g.board = Board{}
	return nil
}

// Board returns the current board
func (g *Game) Board() Board {
	return g.board
}

// ApplyMove places the mark at the position, failing with ErrIllegalMove
// for out-of-range or occupied cells
func (g *Game) ApplyMove(pos Position, mark Mark) error {
	if pos.X < 0 || pos.X > 2 || pos.Y < 0 || pos.Y > 2 {
		return model.ErrIllegalMove
	}
	if g.board.Get(pos) != MarkNone {
		return model.ErrIllegalMove
	}
	g.board.Set(pos, mark)
	return nil
}

// Apply handles one button press: cells are numbered 1-9 in reading order.
// Malformed ids and occupied cells re-render without changing state. After
// a legal move in a single-player game, the computer replies immediately
// within the same turn transition.
func (g *Game) Apply(ctx context.Context, sess *engine.Session, input string, via *model.InteractionRef) {
	if via == nil {
		return
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > 9 {
		sess.AdvanceVia(ctx, *via)
		return
	}
	idx--
	pos := Position{X: idx % 3, Y: idx / 3}

	mark := MarkO
	if sess.StarterTurn() {
		mark = MarkX
	}
	if err := g.ApplyMove(pos, mark); err != nil {
		sess.AdvanceVia(ctx, *via)
		return
	}
	sess.FlipTurn()

	if !g.over() && sess.Opponent() == nil && !sess.StarterTurn() {
		if mv, ok := g.search.BestMove(&g.board); ok {
			g.board.Set(mv, MarkO)
		}
		sess.SetStarterTurn(true)
	}

	if g.over() {
		// Hand the turn back to whichever side placed last so the result
		// names them
		sess.FlipTurn()
		if g.board.HasWon(MarkX) || g.board.HasWon(MarkO) {
			sess.EndVia(ctx, *via, model.Result{
				Kind:    model.ResultWinner,
				Name:    sess.TurnName(),
				Summary: g.board.String(),
			})
		} else {
			sess.EndVia(ctx, *via, model.Result{
				Kind:    model.ResultTie,
				Summary: g.board.String(),
			})
		}
		return
	}

	sess.AdvanceVia(ctx, *via)
}

// Render shows the board image, whose turn it is, and the nine cell buttons
func (g *Game) Render(sess *engine.Session) discord.Request {
	return discord.Request{
		Embed: discord.Embed{
			Title: "Tic-Tac-Toe",
			Color: embedColor,
			Fields: []discord.EmbedField{
				{Name: "Turn:", Value: sess.TurnName()},
			},
			ImageURL: g.imageURL(-1, -1),
			Footer:   fmt.Sprintf("Currently Playing: %s", sess.Starter().Name),
		},
		Buttons: [][]discord.Button{
			{{CustomID: "1", Emoji: "1️⃣"}, {CustomID: "2", Emoji: "2️⃣"}, {CustomID: "3", Emoji: "3️⃣"}},
			{{CustomID: "4", Emoji: "4️⃣"}, {CustomID: "5", Emoji: "5️⃣"}, {CustomID: "6", Emoji: "6️⃣"}},
			{{CustomID: "7", Emoji: "7️⃣"}, {CustomID: "8", Emoji: "8️⃣"}, {CustomID: "9", Emoji: "9️⃣"}},
		},
	}
}

// RenderFinal shows the final board with the winning line highlighted
func (g *Game) RenderFinal(sess *engine.Session, result model.Result) discord.Request {
	from, to := -1, -1
	if f, t, won := g.board.WinningLine(MarkX); won {
		from, to = f, t
	} else if f, t, won := g.board.WinningLine(MarkO); won {
		from, to = f, t
	}

	return discord.Request{
		Embed: discord.Embed{
			Title:       "Tic-Tac-Toe",
			Color:       embedColor,
			Description: "GAME OVER! " + engine.ResultText(result),
			ImageURL:    g.imageURL(from, to),
		},
	}
}

func (g *Game) over() bool {
	if g.board.HasWon(MarkX) || g.board.HasWon(MarkO) {
		return true
	}
	return len(g.board.Available()) == 0
}

func (g *Game) imageURL(from, to int) string {
	return fmt.Sprintf("%s?gb=%s&p1=%d&p2=%d", boardImageURL, g.board.String(), from, to)
}
