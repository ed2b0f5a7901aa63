package service

import (
	"context"

	"gacha/events"
	"gacha/models"
)

// LedgerRepository defines the interface for balance data access
type LedgerRepository interface {
	// GetBalance returns the user's balance, or 0 if the user has no record
	GetBalance(ctx context.Context, userID string) (int64, error)

	// GetBalanceForUpdate returns the balance and locks the row for the rest of the transaction
	GetBalanceForUpdate(ctx context.Context, userID string) (int64, error)

	// EnsureInitialized creates the balance record if and only if none exists
	EnsureInitialized(ctx context.Context, userID string, startingBalance int64) (created bool, err error)

	// TryDeduct atomically subtracts amount if balance >= amount.
	// ok is false and nothing changes when the balance is insufficient or the user is unknown.
	TryDeduct(ctx context.Context, userID string, amount int64) (newBalance int64, ok bool, err error)

	// SetBalance overwrites the user's balance, creating the record if needed
	SetBalance(ctx context.Context, userID string, value int64) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns the most recent balance history for a user, newest first
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceHistory, error)
}

// RollRepository defines the interface for the roll collection store
type RollRepository interface {
	// Insert persists a new roll and returns its assigned id
	Insert(ctx context.Context, roll *models.Roll) (int64, error)

	// GetByID returns a roll or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.Roll, error)

	// ListByOwner returns the owner's rolls oldest first. An empty guildID
	// returns rolls from every guild.
	ListByOwner(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error)

	// Search returns rolls whose name, element or id contains pattern,
	// case-insensitively. An empty pattern matches nothing.
	Search(ctx context.Context, pattern string) ([]*models.Roll, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction. It is a no-op after Commit.
	Rollback() error

	LedgerRepository() LedgerRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	RollRepository() RollRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// Enricher fetches cosmetic display data for a roll
type Enricher interface {
	// FetchDisplayImage returns a random image URL
	FetchDisplayImage(ctx context.Context) (string, error)

	// FetchDisplayName returns a random two-word name
	FetchDisplayName(ctx context.Context) (string, error)
}

// LedgerService defines the interface for munny balance operations
type LedgerService interface {
	// GetBalance returns the stored balance, 0 for unknown users
	GetBalance(ctx context.Context, userID string) (int64, error)

	// EnsureInitialized grants the starting balance the first time a user is seen
	EnsureInitialized(ctx context.Context, userID string, username string) (created bool, err error)

	// TryDeduct atomically charges amount and returns the new balance.
	// Returns an error matching ErrInsufficientFunds when refused.
	TryDeduct(ctx context.Context, userID string, amount int64, txType models.TransactionType, metadata map[string]any) (int64, error)

	// SetBalance overwrites a balance (admin adjustments and credits)
	SetBalance(ctx context.Context, userID string, value int64, metadata map[string]any) error

	// GetHistory returns recent balance changes, newest first
	GetHistory(ctx context.Context, userID string, limit int) ([]*models.BalanceHistory, error)
}

// GachaService defines the interface for paid rolls
type GachaService interface {
	// Roll charges RollCost, computes an outcome, enriches and stores it
	Roll(ctx context.Context, ownerID string, guildID string) (*models.RollResult, error)
}

// CollectionService defines the interface for reading roll collections
type CollectionService interface {
	// ListMine returns the user's rolls, oldest first
	ListMine(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error)

	// Search returns rolls matching a non-blank query
	Search(ctx context.Context, query string) ([]*models.Roll, error)

	// GetRoll returns a single roll or nil
	GetRoll(ctx context.Context, id int64) (*models.Roll, error)
}
