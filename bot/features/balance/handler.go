package balance

import (
	"context"
	"fmt"

	"gacha/bot/common"

	"github.com/bwmarrin/discordgo"
)

// HandleBalance replies with the stored balance, unformatted
func (f *Feature) HandleBalance(ctx context.Context, cmd common.Command) ([]*discordgo.MessageSend, error) {
	balance, err := f.ledgerService.GetBalance(ctx, cmd.UserID)
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to read balance")
	}

	return common.TextReply(fmt.Sprintf("You currently have **%d** munny.", balance)), nil
}
