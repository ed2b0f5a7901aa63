package common

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Command is one prefixed chat message, independent of the gateway
type Command struct {
	RequestID string
	UserID    string
	Username  string
	GuildID   string
	ChannelID string
	// Keyword is the lower-cased first token after the prefix
	Keyword string
	// Args is the rest of the message after the keyword, trimmed
	Args string
}

// Handler handles one command keyword and returns the messages to send
type Handler func(ctx context.Context, cmd Command) ([]*discordgo.MessageSend, error)
