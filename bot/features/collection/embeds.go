package collection

import (
	"fmt"

	"gacha/bot/common"
	"gacha/models"

	"github.com/bwmarrin/discordgo"
)

func buildOwnedRollEmbed(roll *models.Roll, ownerName string) *discordgo.MessageEmbed {
	return buildRollEmbed(
		fmt.Sprintf("*%d*\n    *%s*", roll.ID, common.UpperName(roll.Name)),
		roll, ownerName, common.ColorGreen,
	)
}

func buildSearchResultEmbed(roll *models.Roll, ownerName string) *discordgo.MessageEmbed {
	return buildRollEmbed(
		fmt.Sprintf(" \n    *%s*", common.UpperName(roll.Name)),
		roll, ownerName, common.ColorBlue,
	)
}

func buildRollEmbed(title string, roll *models.Roll, ownerName string, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: common.FormatRollSummary(roll),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: common.FormatOwner(ownerName),
		},
	}
	if roll.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: roll.ImageURL}
	}
	return embed
}
