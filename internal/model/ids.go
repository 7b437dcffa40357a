package model

// GuildID identifies a guild (the chat space scoping session uniqueness)
type GuildID string

// UserID identifies a user across the platform
type UserID string

// ChannelID identifies a channel within a guild
type ChannelID string

// MessageID identifies a message, used as the render surface handle
type MessageID string
