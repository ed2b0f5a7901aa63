package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gacha/models"
	"gacha/service"
)

// BalanceHistoryRepository implements the BalanceHistoryRepository interface on SQLite
type BalanceHistoryRepository struct {
	q queryable
}

// NewBalanceHistoryRepository creates a new balance history repository
func NewBalanceHistoryRepository(db *sql.DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db}
}

func newBalanceHistoryRepositoryWithTx(tx queryable) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: tx}
}

// Record creates a new balance history entry
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	metadataJSON, err := json.Marshal(history.TransactionMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	createdAt := time.Now().UTC()
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO balance_history
		(user_id, balance_before, balance_after, change_amount, transaction_type, transaction_metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		history.UserID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		string(history.TransactionType),
		string(metadataJSON),
		toMillis(createdAt),
	)
	if err != nil {
		return service.NewStorageError("record balance history", fmt.Errorf("user %s: %w", history.UserID, err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return service.NewStorageError("record balance history", err)
	}
	history.ID = id
	history.CreatedAt = fromMillis(toMillis(createdAt))
	return nil
}

// GetByUser returns balance history for a specific user, newest first
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceHistory, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, balance_before, balance_after, change_amount,
		       transaction_type, transaction_metadata, created_at
		FROM balance_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, service.NewStorageError("get balance history", fmt.Errorf("user %s: %w", userID, err))
	}
	defer rows.Close()

	var histories []*models.BalanceHistory
	for rows.Next() {
		var history models.BalanceHistory
		var txType string
		var metadataJSON sql.NullString
		var createdAt int64

		err := rows.Scan(
			&history.ID,
			&history.UserID,
			&history.BalanceBefore,
			&history.BalanceAfter,
			&history.ChangeAmount,
			&txType,
			&metadataJSON,
			&createdAt,
		)
		if err != nil {
			return nil, service.NewStorageError("scan balance history", err)
		}
		history.TransactionType = models.TransactionType(txType)
		history.CreatedAt = fromMillis(createdAt)

		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &history.TransactionMetadata); err != nil {
				return nil, service.NewStorageError("decode balance history metadata", err)
			}
		}

		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, service.NewStorageError("iterate balance history", err)
	}
	return histories, nil
}
