package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gacha/service"
)

// LedgerRepository implements the LedgerRepository interface on SQLite
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{q: db}
}

func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// GetBalance returns the stored balance, or 0 when the user has no record
func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.q.QueryRowContext(ctx, `SELECT balance FROM balances WHERE user_id = ?`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, service.NewStorageError("get balance", fmt.Errorf("user %s: %w", userID, err))
	}
	return balance, nil
}

// GetBalanceForUpdate reads the balance. Transactions are opened with
// BEGIN IMMEDIATE, which already holds the database write lock.
func (r *LedgerRepository) GetBalanceForUpdate(ctx context.Context, userID string) (int64, error) {
	return r.GetBalance(ctx, userID)
}

// EnsureInitialized inserts the starting balance unless a record already exists
func (r *LedgerRepository) EnsureInitialized(ctx context.Context, userID string, startingBalance int64) (bool, error) {
	now := toMillis(time.Now())
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO balances (user_id, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, startingBalance, now, now)
	if err != nil {
		return false, service.NewStorageError("initialize balance", fmt.Errorf("user %s: %w", userID, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, service.NewStorageError("initialize balance", err)
	}
	return affected == 1, nil
}

// TryDeduct subtracts amount in one conditional statement
func (r *LedgerRepository) TryDeduct(ctx context.Context, userID string, amount int64) (int64, bool, error) {
	var newBalance int64
	err := r.q.QueryRowContext(ctx, `
		UPDATE balances
		SET balance = balance - ?, updated_at = ?
		WHERE user_id = ? AND balance >= ?
		RETURNING balance
	`, amount, toMillis(time.Now()), userID, amount).Scan(&newBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, service.NewStorageError("deduct balance", fmt.Errorf("user %s: %w", userID, err))
	}
	return newBalance, true, nil
}

// SetBalance overwrites the balance, creating the record if needed
func (r *LedgerRepository) SetBalance(ctx context.Context, userID string, value int64) error {
	if value < 0 {
		return fmt.Errorf("balance cannot be negative: %d", value)
	}

	now := toMillis(time.Now())
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO balances (user_id, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = excluded.balance, updated_at = excluded.updated_at
	`, userID, value, now, now)
	if err != nil {
		return service.NewStorageError("set balance", fmt.Errorf("user %s: %w", userID, err))
	}
	return nil
}
