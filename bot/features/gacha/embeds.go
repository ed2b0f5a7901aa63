package gacha

import (
	"gacha/bot/common"
	"gacha/models"

	"github.com/bwmarrin/discordgo"
)

func buildRollEmbed(result *models.RollResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "LUCKY GET",
		Description: common.FormatRollResult(result.Roll),
		Color:       common.ColorGold,
		Image: &discordgo.MessageEmbedImage{
			URL: result.Roll.ImageURL,
		},
	}
}
