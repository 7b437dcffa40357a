package engine

import (
	"context"

	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/model"
)

// InputMode declares which external event shape drives a game. A game
// accepts one shape and ignores the other.
type InputMode int

const (
	ReactionDriven InputMode = iota
	ButtonDriven
)

// Descriptor declares a game type's fixed capabilities
type Descriptor struct {
	Identity            model.GameIdentity
	SupportsMultiplayer bool
	Mode                InputMode
}

// Logic is the contract every concrete game implements. A Session drives
// exactly one Logic through the NotStarted -> InProgress -> Over lifecycle;
// the Logic owns all game-specific state and the Session never inspects it.
//
// Logic methods are only ever invoked by the owning Session, which holds the
// session lock for the duration, so implementations need no locking of
// their own.
type Logic interface {
	// Descriptor returns the game's fixed capabilities. Must be constant
	// for the lifetime of the value.
	Descriptor() Descriptor

	// Setup initializes game state to its starting configuration. It may
	// perform content fetches; an error aborts the start and the session
	// never becomes in progress.
	Setup(ctx context.Context) error

	// Apply processes one unit of input from the active player: a reaction
	// emoji name for reaction-driven games, a button custom id for
	// button-driven ones. Illegal or malformed input must be absorbed by
	// re-rendering (sess.Advance / sess.AdvanceVia), never surfaced as an
	// error. Terminal states are reported through sess.End / sess.EndVia.
	// via is non-nil when the input arrived as a component interaction.
	Apply(ctx context.Context, sess *Session, input string, via *model.InteractionRef)

	// Render returns the in-progress view. It must be a pure function of
	// current state.
	Render(sess *Session) discord.Request

	// RenderFinal returns the terminal view for the given result.
	RenderFinal(sess *Session, result model.Result) discord.Request
}
