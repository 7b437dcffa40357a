// Package hangman implements the reaction-driven hangman game. The word is
// fetched from the content collaborator at setup; if that fetch fails the
// game never starts.
package hangman

import (
	"context"
	"fmt"
	"strings"

	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/model"
)

const (
	// Identity is the game's command name and uniqueness tag
	Identity model.GameIdentity = "hangman"

	// maxWrongs is the number of wrong guesses that loses the game
	maxWrongs = 5

	embedColor = 0xdb9a00
)

// WordSource provides the word to guess
type WordSource interface {
	RandomWord(ctx context.Context) (string, error)
}

// Game holds one hangman round
type Game struct {
	source WordSource

	word    string
	guessed []string
	wrongs  int
}

// Ensure Game implements the contract
var _ engine.Logic = (*Game)(nil)

// New creates a hangman game drawing words from the given source
func New(source WordSource) *Game {
	return &Game{source: source}
}

// Descriptor declares hangman as a single-player reaction-driven game
func (g *Game) Descriptor() engine.Descriptor {
	return engine.Descriptor{
		Identity:            Identity,
		SupportsMultiplayer: false,
		Mode:                engine.ReactionDriven,
	}
}

// Setup fetches the word to guess. Any error aborts the start.
func (g *Game) Setup(ctx context.Context) error {
	word, err := g.source.RandomWord(ctx)
	if err != nil {
		return fmt.Errorf("fetch word: %w", err)
	}
	g.word = strings.ToUpper(word)
	g.guessed = nil
	g.wrongs = 0
	return nil
}

// Apply handles one letter-emoji reaction. Emojis that are not letters and
// letters already guessed just re-render.
func (g *Game) Apply(ctx context.Context, sess *engine.Session, input string, via *model.InteractionRef) {
	letter, ok := letterFor(input)
	if !ok || g.hasGuessed(letter) {
		sess.Advance(ctx)
		return
	}

	g.guessed = append(g.guessed, letter)

	if !strings.Contains(g.word, letter) {
		g.wrongs++
		if g.wrongs == maxWrongs {
			sess.End(ctx, model.Result{
				Kind:    model.ResultLoser,
				Name:    sess.Starter().Name,
				Summary: g.word,
			})
			return
		}
	} else if !strings.Contains(g.masked(), "_") {
		sess.End(ctx, model.Result{
			Kind:    model.ResultWinner,
			Name:    sess.Starter().Name,
			Summary: g.word,
		})
		return
	}

	sess.Advance(ctx)
}

// Render shows the gallows and the masked word
func (g *Game) Render(sess *engine.Session) discord.Request {
	guessed := "​"
	if len(g.guessed) > 0 {
		guessed = strings.Join(g.guessed, " ")
	}

	return discord.Request{
		Embed: discord.Embed{
			Title:       "Hangman",
			Color:       embedColor,
			Description: g.drawing(),
			Fields: []discord.EmbedField{
				{Name: "Letters Guessed", Value: guessed},
				{Name: "How To Play", Value: "React to this message using the emojis that look like letters (🅰️, 🇹, )"},
			},
			Footer: fmt.Sprintf("Currently Playing: %s", sess.Starter().Name),
		},
	}
}

// RenderFinal reveals the word alongside the last state of the gallows
func (g *Game) RenderFinal(sess *engine.Session, result model.Result) discord.Request {
	return discord.Request{
		Embed: discord.Embed{
			Title: "Hangman",
			Color: embedColor,
			Description: fmt.Sprintf("%s\n\nThe Word was:\n%s\n\n%s",
				engine.ResultText(result), g.word, g.drawing()),
		},
	}
}

func (g *Game) hasGuessed(letter string) bool {
	for _, l := range g.guessed {
		if l == letter {
			return true
		}
	}
	return false
}

// masked is the word with unguessed letters replaced by underscores
func (g *Game) masked() string {
	var sb strings.Builder
	for _, r := range g.word {
		l := string(r)
		if g.hasGuessed(l) {
			sb.WriteString(l)
		} else {
			sb.WriteString("_")
		}
	}
	return sb.String()
}

func (g *Game) drawing() string {
	part := func(n int, s string) string {
		if g.wrongs > n {
			return s
		}
		return " "
	}

	var sb strings.Builder
	sb.WriteString("```")
	sb.WriteString("|‾‾‾‾‾‾|   \n|     ")
	sb.WriteString(part(0, "🎩"))
	sb.WriteString("   \n|     ")
	sb.WriteString(part(1, "😟"))
	sb.WriteString("   \n|     ")
	sb.WriteString(part(2, "👕"))
	sb.WriteString("   \n|     ")
	sb.WriteString(part(3, "🩳"))
	sb.WriteString("   \n|    ")
	sb.WriteString(part(4, "👞👞"))
	sb.WriteString("   \n|     \n|__________\n\n")
	sb.WriteString(strings.Join(strings.Split(g.masked(), ""), " "))
	sb.WriteString("```")
	return sb.String()
}
