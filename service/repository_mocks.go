package service

import (
	"context"

	"gacha/events"
	"gacha/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetBalanceForUpdate(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) EnsureInitialized(ctx context.Context, userID string, startingBalance int64) (bool, error) {
	args := m.Called(ctx, userID, startingBalance)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) TryDeduct(ctx context.Context, userID string, amount int64) (int64, bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLedgerRepository) SetBalance(ctx context.Context, userID string, value int64) error {
	args := m.Called(ctx, userID, value)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockRollRepository is a mock implementation of RollRepository
type MockRollRepository struct {
	mock.Mock
}

func (m *MockRollRepository) Insert(ctx context.Context, roll *models.Roll) (int64, error) {
	args := m.Called(ctx, roll)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRollRepository) GetByID(ctx context.Context, id int64) (*models.Roll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roll), args.Error(1)
}

func (m *MockRollRepository) ListByOwner(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error) {
	args := m.Called(ctx, ownerID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Roll), args.Error(1)
}

func (m *MockRollRepository) Search(ctx context.Context, pattern string) ([]*models.Roll, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Roll), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	ledgerRepo  LedgerRepository
	historyRepo BalanceHistoryRepository
	rollRepo    RollRepository
	eventBus    EventPublisher
}

// SetRepositories wires the repositories returned by the accessors
func (m *MockUnitOfWork) SetRepositories(ledger LedgerRepository, history BalanceHistoryRepository, rolls RollRepository) {
	m.ledgerRepo = ledger
	m.historyRepo = history
	m.rollRepo = rolls
}

// SetEventBus wires the publisher returned by EventBus
func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository {
	return m.ledgerRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) RollRepository() RollRepository {
	return m.rollRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return events.NewTransactionalBus(nil)
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockEnricher is a mock implementation of Enricher
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) FetchDisplayImage(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockEnricher) FetchDisplayName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) EnsureInitialized(ctx context.Context, userID string, username string) (bool, error) {
	args := m.Called(ctx, userID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) TryDeduct(ctx context.Context, userID string, amount int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, userID, amount, txType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) SetBalance(ctx context.Context, userID string, value int64, metadata map[string]any) error {
	args := m.Called(ctx, userID, value, metadata)
	return args.Error(0)
}

func (m *MockLedgerService) GetHistory(ctx context.Context, userID string, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockCollectionService is a mock implementation of CollectionService
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) ListMine(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error) {
	args := m.Called(ctx, ownerID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Roll), args.Error(1)
}

func (m *MockCollectionService) Search(ctx context.Context, query string) ([]*models.Roll, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Roll), args.Error(1)
}

func (m *MockCollectionService) GetRoll(ctx context.Context, id int64) (*models.Roll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roll), args.Error(1)
}
