package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/turkeydev/gamesbot/internal/model"
)

// Client implements Transport on top of a discordgo session
type Client struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// Ensure Client implements the interface
var _ Transport = (*Client)(nil)

// NewClient creates a Transport backed by the given discordgo session
func NewClient(session *discordgo.Session, logger *slog.Logger) *Client {
	return &Client{
		session: session,
		logger:  logger.With(slog.String("component", "discord-client")),
	}
}

func (c *Client) SendGame(ctx context.Context, ref model.InteractionRef, req Request) (model.MessageID, error) {
	interaction := interactionFrom(ref)

	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(req),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send game response: %w", err)
	}

	// The render surface is the interaction response message; fetch it so
	// reactions and deletions can be routed back to the session.
	msg, err := c.session.InteractionResponse(interaction, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetch game message: %w", err)
	}

	return model.MessageID(msg.ID), nil
}

func (c *Client) UpdateGame(ctx context.Context, channel model.ChannelID, msg model.MessageID, req Request) error {
	embeds := []*discordgo.MessageEmbed{buildEmbed(req.Embed)}
	components := buildComponents(req.Buttons)

	_, err := c.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    string(channel),
		ID:         string(msg),
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("edit game message: %w", err)
	}
	return nil
}

func (c *Client) UpdateOnInteraction(ctx context.Context, ref model.InteractionRef, req Request) error {
	err := c.session.InteractionRespond(interactionFrom(ref), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(req),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("update via interaction: %w", err)
	}
	return nil
}

func (c *Client) Reply(ctx context.Context, ref model.InteractionRef, content string) error {
	err := c.session.InteractionRespond(interactionFrom(ref), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("reply to interaction: %w", err)
	}
	return nil
}

func (c *Client) ReplyEmbed(ctx context.Context, ref model.InteractionRef, embed Embed) error {
	err := c.session.InteractionRespond(interactionFrom(ref), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildEmbed(embed)},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("reply with embed: %w", err)
	}
	return nil
}

func (c *Client) Defer(ctx context.Context, ref model.InteractionRef) error {
	err := c.session.InteractionRespond(interactionFrom(ref), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("defer interaction: %w", err)
	}
	return nil
}

func (c *Client) RemoveReaction(ctx context.Context, channel model.ChannelID, msg model.MessageID, user model.UserID, emoji string) error {
	err := c.session.MessageReactionRemove(string(channel), string(msg), emoji, string(user), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("remove reaction: %w", err)
	}
	return nil
}

func interactionFrom(ref model.InteractionRef) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    ref.ID,
		Token: ref.Token,
		AppID: ref.AppID,
	}
}

func responseData(req Request) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildEmbed(req.Embed)},
		Components: buildComponents(req.Buttons),
	}
}

func buildEmbed(e Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  f.Name,
			Value: f.Value,
		})
	}
	if e.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return embed
}

func buildComponents(rows [][]Button) []discordgo.MessageComponent {
	var components []discordgo.MessageComponent
	for _, row := range rows {
		var buttons []discordgo.MessageComponent
		for _, b := range row {
			buttons = append(buttons, discordgo.Button{
				Style:    discordgo.SecondaryButton,
				CustomID: b.CustomID,
				Emoji:    &discordgo.ComponentEmoji{Name: b.Emoji},
			})
		}
		components = append(components, discordgo.ActionsRow{Components: buttons})
	}
	return components
}
