// Package router dispatches inbound gateway events to the right game
// session through the registry.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/turkeydev/gamesbot/internal/dependencies/clock"
	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/games"
	"github.com/turkeydev/gamesbot/internal/model"
	"github.com/turkeydev/gamesbot/internal/registry"
)

// Built-in commands alongside the per-game ones
const (
	CommandHelp    = "gamesbot"
	CommandList    = "listgames"
	CommandEndGame = "endgame"
)

const infoColor = 0xfc2eff

// Router is the single entry point for inbound events. A mutex serializes
// all handling, standing in for the one logical thread of control the
// session model assumes; no two events are ever processed in parallel.
type Router struct {
	mu        sync.Mutex
	registry  *registry.Registry
	transport discord.Transport
	catalog   []games.Entry
	byCommand map[string]games.Entry
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a Router over the given registry and game catalog
func New(reg *registry.Registry, transport discord.Transport, catalog []games.Entry, clk clock.Clock, logger *slog.Logger) *Router {
	byCommand := make(map[string]games.Entry, len(catalog))
	for _, e := range catalog {
		byCommand[e.Command] = e
	}
	return &Router{
		registry:  reg,
		transport: transport,
		catalog:   catalog,
		byCommand: byCommand,
		clock:     clk,
		logger:    logger.With(slog.String("component", "router")),
	}
}

// CommandSpecs returns the slash commands the router handles, for
// registration at startup
func (r *Router) CommandSpecs() []discord.CommandSpec {
	specs := []discord.CommandSpec{
		{Name: CommandHelp, Description: "GamesBot help and info"},
		{Name: CommandList, Description: "List available games"},
		{Name: CommandEndGame, Description: "End the game you are currently playing"},
	}
	for _, e := range r.catalog {
		specs = append(specs, discord.CommandSpec{
			Name:         e.Command,
			Description:  e.Description,
			WithOpponent: e.Multiplayer,
		})
	}
	return specs
}

// HandleCommand routes a slash command invocation
func (r *Router) HandleCommand(ctx context.Context, ev model.CommandEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.byCommand[ev.Command]; ok {
		r.startGame(ctx, ev, entry)
		return
	}

	switch ev.Command {
	case CommandEndGame:
		r.endGame(ctx, ev)
	case CommandList:
		r.replyEmbed(ctx, ev.Interaction, r.listEmbed())
	case CommandHelp:
		r.replyEmbed(ctx, ev.Interaction, r.helpEmbed())
	default:
		r.logger.Debug("ignoring unknown command", slog.String("command", ev.Command))
	}
}

// startGame constructs and registers a session, then starts it. Every
// rejection is surfaced to the requester with its specific reason and
// leaves no state behind.
func (r *Router) startGame(ctx context.Context, ev model.CommandEvent, entry games.Entry) {
	if err := validateOpponent(ev, entry); err != nil {
		r.reply(ctx, ev.Interaction, rejectionMessage(err))
		return
	}

	sess := engine.New(entry.New(), ev.User, ev.Opponent, r.transport, r.clock, r.logger)

	if err := r.registry.Register(ev.Guild, sess); err != nil {
		r.reply(ctx, ev.Interaction, rejectionMessage(err))
		return
	}

	onEnd := func(result model.Result) {
		r.registry.Unregister(ev.Guild, sess)
	}

	if err := sess.Start(ctx, ev, onEnd); err != nil {
		// Setup or the initial render failed; the session never ran, so
		// release its slots rather than leave it half registered.
		r.registry.Unregister(ev.Guild, sess)
		r.logger.Error("failed to start game",
			slog.String("game", entry.Command),
			slog.String("guild", string(ev.Guild)),
			slog.String("error", err.Error()),
		)
		r.reply(ctx, ev.Interaction, "Sorry, something went wrong starting your game!")
	}
}

func (r *Router) endGame(ctx context.Context, ev model.CommandEvent) {
	sess := r.registry.Lookup(ev.Guild, ev.User.ID)
	if sess == nil {
		r.reply(ctx, ev.Interaction, "Sorry! You must be in a game first!")
		return
	}
	sess.ForceEnd(ctx)
	r.reply(ctx, ev.Interaction, "Your game was ended!")
}

// HandleReaction routes a reaction to the reacting user's session, if any.
// The session itself enforces turn attribution and input mode.
func (r *Router) HandleReaction(ctx context.Context, ev model.ReactionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.registry.Lookup(ev.Guild, ev.User)
	if sess == nil {
		return
	}
	sess.HandleReaction(ctx, ev)
}

// HandleComponent routes a button press to the pressing user's session.
// Users with no session get their interaction acknowledged without any
// content change.
func (r *Router) HandleComponent(ctx context.Context, ev model.InteractionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.registry.Lookup(ev.Guild, ev.User)
	if sess == nil {
		if err := r.transport.Defer(ctx, ev.Interaction); err != nil {
			r.logger.Debug("failed to defer interaction", slog.String("error", err.Error()))
		}
		return
	}
	sess.HandleInteraction(ctx, ev)
}

// HandleMessageDelete ends any session whose render surface was among the
// deleted messages
func (r *Router) HandleMessageDelete(ctx context.Context, guild model.GuildID, msgs ...model.MessageID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range msgs {
		for _, sess := range r.registry.FindByMessage(guild, msg) {
			sess.SurfaceDeleted(ctx)
		}
	}
}

func (r *Router) listEmbed() discord.Embed {
	var sb strings.Builder
	for _, e := range r.catalog {
		fmt.Fprintf(&sb, "%s - %s\n\n", e.Emoji, e.Title)
	}
	return discord.Embed{
		Title:       "Available Games",
		Color:       infoColor,
		Description: strings.TrimSuffix(sb.String(), "\n\n"),
	}
}

func (r *Router) helpEmbed() discord.Embed {
	return discord.Embed{
		Title: "Games Bot",
		Color: infoColor,
		Description: "Welcome to GamesBot!\n" +
			"This bot adds lots of little games that you can play right from your Discord chat!\n" +
			"Use /listgames to list all available games!\n" +
			"All games are started via slash commands and any game can be ended using /endgame.\n" +
			"Only 1 instance of each game may be active at a time and a user can only be playing 1 instance of a game at a time",
	}
}

func (r *Router) reply(ctx context.Context, ref model.InteractionRef, content string) {
	if err := r.transport.Reply(ctx, ref, content); err != nil {
		r.logger.Debug("failed to reply", slog.String("error", err.Error()))
	}
}

func (r *Router) replyEmbed(ctx context.Context, ref model.InteractionRef, embed discord.Embed) {
	if err := r.transport.ReplyEmbed(ctx, ref, embed); err != nil {
		r.logger.Debug("failed to reply with embed", slog.String("error", err.Error()))
	}
}

// validateOpponent checks the requested pairing before any state is touched
func validateOpponent(ev model.CommandEvent, entry games.Entry) error {
	if ev.Opponent == nil {
		return nil
	}
	if !entry.Multiplayer {
		return model.ErrUnsupportedMultiplayer
	}
	if ev.Opponent.ID == ev.User.ID {
		return model.ErrSelfPlay
	}
	return nil
}

// rejectionMessage maps a start rejection to the short human-readable
// reason shown to the requester
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrUnsupportedMultiplayer):
		return "Sorry that game is not a multiplayer game!"
	case errors.Is(err, model.ErrSelfPlay):
		return "You cannot play against yourself!"
	case errors.Is(err, model.ErrOpponentInGame):
		return "The person you are trying to play against is already in a game!"
	case errors.Is(err, model.ErrAlreadyInGame):
		return "You must either finish or end your current game (/endgame) before you can play another!"
	case errors.Is(err, model.ErrDuplicateInstance):
		return "Sorry, there can only be 1 instance of a game at a time!"
	default:
		return "Sorry, something went wrong starting your game!"
	}
}
