package cmd

import (
	"context"

	"gacha/events"

	log "github.com/sirupsen/logrus"
)

// subscribeAuditLog logs every committed ledger and collection change
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.UserCreatedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"user_id":         e.UserID,
			"username":        e.Username,
			"initial_balance": e.InitialBalance,
		}).Info("User initialized")
	})

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.BalanceChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"user_id":     e.UserID,
			"old_balance": e.OldBalance,
			"new_balance": e.NewBalance,
			"change":      e.ChangeAmount,
			"type":        e.TransactionType,
		}).Debug("Balance changed")
	})

	bus.Subscribe(events.EventTypeRollCreated, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.RollCreatedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"roll_id":  e.RollID,
			"owner_id": e.OwnerID,
			"guild_id": e.GuildID,
			"rarity":   e.Rarity,
			"element":  e.Element.String(),
		}).Info("Roll created")
	})
}
