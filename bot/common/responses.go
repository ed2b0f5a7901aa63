package common

import (
	"github.com/bwmarrin/discordgo"
)

// TextReply builds a plain text message
func TextReply(content string) []*discordgo.MessageSend {
	return []*discordgo.MessageSend{{Content: content}}
}

// EmbedReplies groups embeds into as few messages as Discord allows
func EmbedReplies(embeds []*discordgo.MessageEmbed) []*discordgo.MessageSend {
	var replies []*discordgo.MessageSend
	for start := 0; start < len(embeds); start += MaxEmbedsPerMessage {
		end := start + MaxEmbedsPerMessage
		if end > len(embeds) {
			end = len(embeds)
		}
		replies = append(replies, &discordgo.MessageSend{Embeds: embeds[start:end]})
	}
	return replies
}
