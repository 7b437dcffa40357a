package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/turkeydev/gamesbot/internal/model"
)

// Handler receives the inbound events the gateway cares about. The event
// router implements this; the small interface keeps the gateway free of a
// dependency on the router package.
type Handler interface {
	HandleCommand(ctx context.Context, ev model.CommandEvent)
	HandleReaction(ctx context.Context, ev model.ReactionEvent)
	HandleComponent(ctx context.Context, ev model.InteractionEvent)
	HandleMessageDelete(ctx context.Context, guild model.GuildID, msgs ...model.MessageID)
}

// CommandSpec describes one slash command to register at startup
type CommandSpec struct {
	Name        string
	Description string
	// WithOpponent adds the optional "vs" user option for player-vs-player games
	WithOpponent bool
}

// Gateway binds discordgo events to a Handler
type Gateway struct {
	session  *discordgo.Session
	handler  Handler
	commands []CommandSpec
	logger   *slog.Logger
}

// NewGateway creates a gateway over the given session. Call Bind before
// opening the session.
func NewGateway(session *discordgo.Session, handler Handler, commands []CommandSpec, logger *slog.Logger) *Gateway {
	return &Gateway{
		session:  session,
		handler:  handler,
		commands: commands,
		logger:   logger.With(slog.String("component", "gateway")),
	}
}

// Bind registers the event handlers and gateway intents
func (g *Gateway) Bind() {
	g.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	g.session.AddHandler(g.onReady)
	g.session.AddHandler(g.onInteractionCreate)
	g.session.AddHandler(g.onReactionAdd)
	g.session.AddHandler(g.onMessageDelete)
	g.session.AddHandler(g.onMessageDeleteBulk)
}

func (g *Gateway) onReady(s *discordgo.Session, r *discordgo.Ready) {
	g.logger.Info("logged in", slog.String("username", r.User.Username))

	specs := make([]*discordgo.ApplicationCommand, 0, len(g.commands))
	for _, c := range g.commands {
		cmd := &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
		}
		if c.WithOpponent {
			cmd.Options = []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "vs",
				Description: "User you wish to play against",
			}}
		}
		specs = append(specs, cmd)
	}

	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", specs); err != nil {
		g.logger.Error("failed to register commands", slog.String("error", err.Error()))
	}
}

func (g *Gateway) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
			// Commands only make sense inside a guild
			if err := g.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "This command can only be run inside a guild!",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}); err != nil {
				g.logger.Debug("failed to reject DM command", slog.String("error", err.Error()))
			}
			return
		}

		data := i.ApplicationCommandData()
		ev := model.CommandEvent{
			Guild:   model.GuildID(i.GuildID),
			Channel: model.ChannelID(i.ChannelID),
			User: model.PlayerRef{
				ID:   model.UserID(i.Member.User.ID),
				Name: i.Member.User.Username,
			},
			Command:     data.Name,
			Interaction: refFrom(i.Interaction),
		}
		for _, opt := range data.Options {
			if opt.Name == "vs" && opt.Type == discordgo.ApplicationCommandOptionUser {
				if u := opt.UserValue(s); u != nil {
					ev.Opponent = &model.PlayerRef{
						ID:   model.UserID(u.ID),
						Name: u.Username,
					}
				}
			}
		}
		g.handler.HandleCommand(ctx, ev)

	case discordgo.InteractionMessageComponent:
		if i.GuildID == "" || i.Member == nil || i.Member.User == nil || i.Message == nil {
			return
		}
		g.handler.HandleComponent(ctx, model.InteractionEvent{
			Guild:       model.GuildID(i.GuildID),
			Channel:     model.ChannelID(i.ChannelID),
			Message:     model.MessageID(i.Message.ID),
			User:        model.UserID(i.Member.User.ID),
			CustomID:    i.MessageComponentData().CustomID,
			Interaction: refFrom(i.Interaction),
		})
	}
}

func (g *Gateway) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" {
		return
	}
	g.handler.HandleReaction(context.Background(), model.ReactionEvent{
		Guild:   model.GuildID(r.GuildID),
		Channel: model.ChannelID(r.ChannelID),
		Message: model.MessageID(r.MessageID),
		User:    model.UserID(r.UserID),
		Emoji:   r.Emoji.Name,
	})
}

func (g *Gateway) onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.GuildID == "" {
		return
	}
	g.handler.HandleMessageDelete(context.Background(), model.GuildID(m.GuildID), model.MessageID(m.ID))
}

func (g *Gateway) onMessageDeleteBulk(s *discordgo.Session, m *discordgo.MessageDeleteBulk) {
	if m.GuildID == "" {
		return
	}
	msgs := make([]model.MessageID, 0, len(m.Messages))
	for _, id := range m.Messages {
		msgs = append(msgs, model.MessageID(id))
	}
	g.handler.HandleMessageDelete(context.Background(), model.GuildID(m.GuildID), msgs...)
}

func refFrom(i *discordgo.Interaction) model.InteractionRef {
	return model.InteractionRef{
		ID:    i.ID,
		AppID: i.AppID,
		Token: i.Token,
	}
}
