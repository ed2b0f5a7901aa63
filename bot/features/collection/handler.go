package collection

import (
	"context"
	"errors"
	"strings"

	"gacha/bot/common"
	"gacha/service"

	"github.com/bwmarrin/discordgo"
)

// HandleMyRolls lists the caller's rolls
func (f *Feature) HandleMyRolls(ctx context.Context, cmd common.Command) ([]*discordgo.MessageSend, error) {
	rolls, err := f.collectionService.ListMine(ctx, cmd.UserID, cmd.GuildID)
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to list rolls")
	}
	if len(rolls) == 0 {
		return common.TextReply(common.MessageNoRolls), nil
	}

	names := common.NewDisplayNameCache(f.members, cmd.GuildID)
	embeds := make([]*discordgo.MessageEmbed, 0, len(rolls))
	for _, roll := range rolls {
		embeds = append(embeds, buildOwnedRollEmbed(roll, names.Get(roll.OwnerID)))
	}
	return common.EmbedReplies(embeds), nil
}

// HandleQuery searches every roll by name, element or id
func (f *Feature) HandleQuery(ctx context.Context, cmd common.Command) ([]*discordgo.MessageSend, error) {
	if strings.TrimSpace(cmd.Args) == "" {
		return common.TextReply(common.MessageMissingQuery), nil
	}

	rolls, err := f.collectionService.Search(ctx, cmd.Args)
	if errors.Is(err, service.ErrInvalidQuery) {
		return common.TextReply(common.MessageMissingQuery), nil
	}
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to search rolls")
	}
	if len(rolls) == 0 {
		return common.TextReply(common.MessageNoResults), nil
	}

	names := common.NewDisplayNameCache(f.members, cmd.GuildID)
	embeds := make([]*discordgo.MessageEmbed, 0, len(rolls))
	for _, roll := range rolls {
		embeds = append(embeds, buildSearchResultEmbed(roll, names.Get(roll.OwnerID)))
	}
	return common.EmbedReplies(embeds), nil
}
