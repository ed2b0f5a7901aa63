package service

import (
	"context"
	"fmt"

	"gacha/events"
	"gacha/models"
)

// RecordBalanceChange records a balance history entry and emits the matching events.
// This is the single entry point for all balance changes in the system.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, history *models.BalanceHistory) error {
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	// Flushed only after the transaction commits
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          history.UserID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	if history.TransactionType == models.TransactionTypeInitial {
		username, _ := history.TransactionMetadata["username"].(string)
		uow.EventBus().Publish(events.UserCreatedEvent{
			UserID:         history.UserID,
			Username:       username,
			InitialBalance: history.BalanceAfter,
		})
	}

	return nil
}
