package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gacha/events"
	"gacha/service"
)

// unitOfWork implements the UnitOfWork interface over a *sql.Tx
type unitOfWork struct {
	db                 *sql.DB
	tx                 *sql.Tx
	ctx                context.Context
	transactionalBus   *events.TransactionalBus
	ledgerRepo         service.LedgerRepository
	balanceHistoryRepo service.BalanceHistoryRepository
	rollRepo           service.RollRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *sql.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *sql.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return service.NewStorageError("begin transaction", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.ledgerRepo = newLedgerRepositoryWithTx(tx)
	u.balanceHistoryRepo = newBalanceHistoryRepositoryWithTx(tx)
	u.rollRepo = newRollRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(); err != nil {
		return service.NewStorageError("commit transaction", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback()
	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() service.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceHistoryRepo
}

// RollRepository returns the roll repository for this unit of work
func (u *unitOfWork) RollRepository() service.RollRepository {
	if u.rollRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rollRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
