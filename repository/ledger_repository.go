package repository

import (
	"context"
	"errors"
	"fmt"

	"gacha/database"
	"gacha/service"

	"github.com/jackc/pgx/v5"
)

// LedgerRepository implements the LedgerRepository interface on Postgres
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository with a transaction
func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// GetBalance returns the stored balance, or 0 when the user has no record
func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	return r.getBalance(ctx, `SELECT balance FROM balances WHERE user_id = $1`, userID)
}

// GetBalanceForUpdate reads the balance and locks the row until the transaction ends
func (r *LedgerRepository) GetBalanceForUpdate(ctx context.Context, userID string) (int64, error) {
	return r.getBalance(ctx, `SELECT balance FROM balances WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *LedgerRepository) getBalance(ctx context.Context, query string, userID string) (int64, error) {
	var balance int64
	err := r.q.QueryRow(ctx, query, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, service.NewStorageError("get balance", fmt.Errorf("user %s: %w", userID, err))
	}
	return balance, nil
}

// EnsureInitialized inserts the starting balance unless a record already exists
func (r *LedgerRepository) EnsureInitialized(ctx context.Context, userID string, startingBalance int64) (bool, error) {
	query := `
		INSERT INTO balances (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, userID, startingBalance)
	if err != nil {
		return false, service.NewStorageError("initialize balance", fmt.Errorf("user %s: %w", userID, err))
	}

	return result.RowsAffected() == 1, nil
}

// TryDeduct subtracts amount in one conditional statement. No matching row
// means the balance was too low or the user is unknown.
func (r *LedgerRepository) TryDeduct(ctx context.Context, userID string, amount int64) (int64, bool, error) {
	query := `
		UPDATE balances
		SET balance = balance - $1, updated_at = NOW()
		WHERE user_id = $2 AND balance >= $1
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, userID).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
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

	query := `
		INSERT INTO balances (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = EXCLUDED.balance, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, userID, value); err != nil {
		return service.NewStorageError("set balance", fmt.Errorf("user %s: %w", userID, err))
	}
	return nil
}
