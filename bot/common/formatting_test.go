package common

import (
	"testing"

	"gacha/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestFormatRollResult(t *testing.T) {
	roll := &models.Roll{Rarity: 10, Element: models.ElementFire, Name: "BRAVE OTTER", Attack: 1, Defense: 50, Speed: 100}

	text := FormatRollResult(roll)

	assert.Contains(t, text, "**10**★ **🔥** type **\"BRAVE OTTER\"**")
	assert.Contains(t, text, "**ATK:** 1\n**DEF:** 50\n**SPD:** 100")
}

func TestFormatRollSummary(t *testing.T) {
	roll := &models.Roll{Rarity: 3, Element: models.ElementGrass, Attack: 7, Defense: 8, Speed: 9}

	assert.Equal(t, "I'm a **3★** **🍃** type with..\n**ATK:** 7\n**DEF:** 8\n**SPD:** 9", FormatRollSummary(roll))
}

func TestEmbedReplies_Chunking(t *testing.T) {
	tests := []struct {
		count    int
		expected []int
	}{
		{0, nil},
		{1, []int{1}},
		{10, []int{10}},
		{11, []int{10, 1}},
		{25, []int{10, 10, 5}},
	}

	for _, tt := range tests {
		embeds := make([]*discordgo.MessageEmbed, tt.count)
		for i := range embeds {
			embeds[i] = &discordgo.MessageEmbed{}
		}

		var sizes []int
		for _, reply := range EmbedReplies(embeds) {
			sizes = append(sizes, len(reply.Embeds))
		}
		assert.Equal(t, tt.expected, sizes, "count %d", tt.count)
	}
}

type fakeResolver struct {
	members map[string]*discordgo.Member
	users   map[string]*discordgo.User
	calls   int
}

func (f *fakeResolver) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.calls++
	if m, ok := f.members[userID]; ok {
		return m, nil
	}
	return nil, assert.AnError
}

func (f *fakeResolver) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, assert.AnError
}

func TestGetDisplayName(t *testing.T) {
	r := &fakeResolver{
		members: map[string]*discordgo.Member{
			"nick":  {Nick: "Nicky", User: &discordgo.User{Username: "nick_user"}},
			"plain": {User: &discordgo.User{Username: "plain_user"}},
		},
		users: map[string]*discordgo.User{
			"left": {Username: "left_user"},
		},
	}

	assert.Equal(t, "Nicky", GetDisplayName(r, "g1", "nick"))
	assert.Equal(t, "plain_user", GetDisplayName(r, "g1", "plain"))
	assert.Equal(t, "left_user", GetDisplayName(r, "g1", "left"))
	assert.Equal(t, "Unknown", GetDisplayName(r, "g1", "ghost"))
	assert.Equal(t, "Unknown", GetDisplayName(nil, "g1", "ghost"))
}

func TestDisplayNameCache(t *testing.T) {
	r := &fakeResolver{members: map[string]*discordgo.Member{"a": {Nick: "A"}}}
	cache := NewDisplayNameCache(r, "g1")

	assert.Equal(t, "A", cache.Get("a"))
	assert.Equal(t, "A", cache.Get("a"))
	assert.Equal(t, 1, r.calls)
}
