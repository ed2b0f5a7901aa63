package service

import (
	"context"
	"fmt"

	"gacha/models"
)

// StartingBalance is granted once to every user on first activity
const StartingBalance int64 = 500

// DefaultHistoryLimit caps GetHistory when no limit is given
const DefaultHistoryLimit = 25

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	balance, err := uow.LedgerRepository().GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (s *ledgerService) EnsureInitialized(ctx context.Context, userID string, username string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user id is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// The insert is create-if-absent, so concurrent callers race safely
	created, err := uow.LedgerRepository().EnsureInitialized(ctx, userID, StartingBalance)
	if err != nil {
		return false, fmt.Errorf("failed to initialize balance: %w", err)
	}
	if !created {
		return false, nil
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   0,
		BalanceAfter:    StartingBalance,
		ChangeAmount:    StartingBalance,
		TransactionType: models.TransactionTypeInitial,
		TransactionMetadata: map[string]any{
			"username": username,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return false, fmt.Errorf("failed to record initial balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

func (s *ledgerService) TryDeduct(ctx context.Context, userID string, amount int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("deduction amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	newBalance, ok, err := uow.LedgerRepository().TryDeduct(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance: %w", err)
	}
	if !ok {
		balance, err := uow.LedgerRepository().GetBalance(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to read balance after refused deduction: %w", err)
		}
		return 0, &InsufficientFundsError{Balance: balance, Required: amount}
	}

	history := &models.BalanceHistory{
		UserID:              userID,
		BalanceBefore:       newBalance + amount,
		BalanceAfter:        newBalance,
		ChangeAmount:        -amount,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return 0, fmt.Errorf("failed to record deduction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return newBalance, nil
}

func (s *ledgerService) SetBalance(ctx context.Context, userID string, value int64, metadata map[string]any) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if value < 0 {
		return fmt.Errorf("balance cannot be negative: %d", value)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	before, err := uow.LedgerRepository().GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read current balance: %w", err)
	}

	if err := uow.LedgerRepository().SetBalance(ctx, userID, value); err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:              userID,
		BalanceBefore:       before,
		BalanceAfter:        value,
		ChangeAmount:        value - before,
		TransactionType:     models.TransactionTypeAdjustment,
		TransactionMetadata: metadata,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return fmt.Errorf("failed to record adjustment: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *ledgerService) GetHistory(ctx context.Context, userID string, limit int) ([]*models.BalanceHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	history, err := uow.BalanceHistoryRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history: %w", err)
	}
	return history, nil
}
