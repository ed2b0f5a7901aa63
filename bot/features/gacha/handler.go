package gacha

import (
	"context"
	"errors"

	"gacha/bot/common"
	"gacha/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleRoll charges the user and shows what they rolled
func (f *Feature) HandleRoll(ctx context.Context, cmd common.Command) ([]*discordgo.MessageSend, error) {
	result, err := f.gachaService.Roll(ctx, cmd.UserID, cmd.GuildID)
	if errors.Is(err, service.ErrInsufficientFunds) {
		return nil, common.FromServiceError(err, "Roll refused")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to roll")
	}

	log.WithFields(log.Fields{
		"request_id": cmd.RequestID,
		"user_id":    cmd.UserID,
		"roll_id":    result.Roll.ID,
		"rarity":     result.Roll.Rarity,
		"balance":    result.NewBalance,
		"degraded":   result.Degraded,
	}).Info("Roll completed")

	if result.Degraded {
		return common.TextReply(common.MessageNoImage + "\n" + common.FormatRollResult(result.Roll)), nil
	}

	return []*discordgo.MessageSend{{
		Embeds: []*discordgo.MessageEmbed{buildRollEmbed(result)},
	}}, nil
}
