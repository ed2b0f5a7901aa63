package common

import (
	"github.com/bwmarrin/discordgo"
)

// MemberResolver looks up guild members and users. *discordgo.Session satisfies it.
type MemberResolver interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// GetDisplayName returns the server-specific display name for a user.
// Falls back to the username, then to "Unknown".
func GetDisplayName(r MemberResolver, guildID, userID string) string {
	if r == nil {
		return "Unknown"
	}

	member, err := r.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := r.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// DisplayNameCache resolves each user at most once per command
type DisplayNameCache struct {
	resolver MemberResolver
	guildID  string
	names    map[string]string
}

// NewDisplayNameCache creates a cache scoped to one guild
func NewDisplayNameCache(r MemberResolver, guildID string) *DisplayNameCache {
	return &DisplayNameCache{
		resolver: r,
		guildID:  guildID,
		names:    make(map[string]string),
	}
}

// Get returns the display name for userID
func (c *DisplayNameCache) Get(userID string) string {
	if name, ok := c.names[userID]; ok {
		return name
	}
	name := GetDisplayName(c.resolver, c.guildID, userID)
	c.names[userID] = name
	return name
}
