package discord

import (
	"context"

	"github.com/turkeydev/gamesbot/internal/model"
)

// Transport is the rendering collaborator the core drives. Implementations
// talk to the chat platform; failures are returned to the caller, which is
// expected to log them and leave session state unchanged.
type Transport interface {
	// SendGame posts the initial render as the response to a command
	// invocation and returns the id of the created message, which becomes
	// the session's render surface.
	SendGame(ctx context.Context, ref model.InteractionRef, req Request) (model.MessageID, error)

	// UpdateGame edits the render surface in place.
	UpdateGame(ctx context.Context, channel model.ChannelID, msg model.MessageID, req Request) error

	// UpdateOnInteraction edits the render surface as the response to a
	// component interaction.
	UpdateOnInteraction(ctx context.Context, ref model.InteractionRef, req Request) error

	// Reply sends a short ephemeral reply to an interaction. Used for
	// rejection reasons; the text is the full user-visible error surface.
	Reply(ctx context.Context, ref model.InteractionRef, content string) error

	// ReplyEmbed responds to an interaction with a standalone embed
	// (help and game listings).
	ReplyEmbed(ctx context.Context, ref model.InteractionRef, embed Embed) error

	// Defer acknowledges an interaction without changing any content.
	Defer(ctx context.Context, ref model.InteractionRef) error

	// RemoveReaction retracts a user's reaction from a message.
	RemoveReaction(ctx context.Context, channel model.ChannelID, msg model.MessageID, user model.UserID, emoji string) error
}
