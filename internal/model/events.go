package model

// InteractionRef carries what the transport needs to respond to an
// interaction (slash command invocation or button press)
type InteractionRef struct {
	ID    string
	AppID string
	Token string
}

// CommandEvent is a slash command invocation inside a guild
type CommandEvent struct {
	Guild       GuildID
	Channel     ChannelID
	User        PlayerRef
	Command     string
	Opponent    *PlayerRef // The "vs" option, when provided
	Interaction InteractionRef
}

// ReactionEvent is a reaction added to a message
type ReactionEvent struct {
	Guild   GuildID
	Channel ChannelID
	Message MessageID
	User    UserID
	Emoji   string
}

// InteractionEvent is a component (button) interaction on a message
type InteractionEvent struct {
	Guild       GuildID
	Channel     ChannelID
	Message     MessageID
	User        UserID
	CustomID    string
	Interaction InteractionRef
}
