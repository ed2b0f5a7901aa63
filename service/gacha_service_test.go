package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gacha/events"
	"gacha/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedOutcomeSource() *scriptedSource {
	// draw 100 -> rarity 10, stats 10/20/30, Fire
	return &scriptedSource{values: []int{99, 9, 19, 29, 1}}
}

func TestGachaService_Roll_Success(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	ledger := new(MockLedgerService)
	enricher := new(MockEnricher)
	svc := NewGachaService(m.factory, ledger, enricher, fixedOutcomeSource(), time.Second)

	ledger.On("TryDeduct", ctx, "111", RollCost, models.TransactionTypeRoll, map[string]any{"guild_id": "g1"}).
		Return(int64(400), nil)
	enricher.On("FetchDisplayImage", mock.Anything).Return("https://img.example/1.png", nil)
	enricher.On("FetchDisplayName", mock.Anything).Return("BRAVE OTTER", nil)
	m.rolls.On("Insert", ctx, mock.MatchedBy(func(r *models.Roll) bool {
		return r.OwnerID == "111" &&
			r.GuildID == "g1" &&
			r.Rarity == 10 &&
			r.Attack == 10 &&
			r.Defense == 20 &&
			r.Speed == 30 &&
			r.Element == models.ElementFire &&
			r.Name == "BRAVE OTTER" &&
			r.ImageURL == "https://img.example/1.png"
	})).Return(int64(7), nil)
	m.bus.On("Publish", events.RollCreatedEvent{
		RollID:  7,
		OwnerID: "111",
		GuildID: "g1",
		Rarity:  10,
		Element: models.ElementFire,
		Name:    "BRAVE OTTER",
	}).Return()
	m.uow.On("Commit").Return(nil)

	result, err := svc.Roll(ctx, "111", "g1")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(7), result.Roll.ID)
	assert.Equal(t, int64(400), result.NewBalance)
	assert.False(t, result.Degraded)
	ledger.AssertExpectations(t)
	enricher.AssertExpectations(t)
	m.assertExpectations(t)
}

func TestGachaService_Roll_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	ledger := new(MockLedgerService)
	enricher := new(MockEnricher)
	src := fixedOutcomeSource()
	svc := NewGachaService(m.factory, ledger, enricher, src, time.Second)

	ledger.On("TryDeduct", ctx, "111", RollCost, models.TransactionTypeRoll, mock.Anything).
		Return(int64(0), &InsufficientFundsError{Balance: 50, Required: RollCost})

	result, err := svc.Roll(ctx, "111", "g1")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Empty(t, src.calls, "no outcome should be computed")
	enricher.AssertNotCalled(t, "FetchDisplayImage", mock.Anything)
	enricher.AssertNotCalled(t, "FetchDisplayName", mock.Anything)
	m.factory.AssertNotCalled(t, "Create")
}

func TestGachaService_Roll_EnrichmentFallbacks(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	ledger := new(MockLedgerService)
	enricher := new(MockEnricher)
	svc := NewGachaService(m.factory, ledger, enricher, fixedOutcomeSource(), time.Second)

	ledger.On("TryDeduct", ctx, "111", RollCost, models.TransactionTypeRoll, mock.Anything).Return(int64(0), nil)
	enricher.On("FetchDisplayImage", mock.Anything).Return("", ErrEnrichmentUnavailable)
	enricher.On("FetchDisplayName", mock.Anything).Return("", ErrEnrichmentUnavailable)
	m.rolls.On("Insert", ctx, mock.MatchedBy(func(r *models.Roll) bool {
		return r.ImageURL == "" && r.Name == DefaultRollName
	})).Return(int64(1), nil)
	m.bus.On("Publish", mock.AnythingOfType("events.RollCreatedEvent")).Return()
	m.uow.On("Commit").Return(nil)

	result, err := svc.Roll(ctx, "111", "g1")

	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, DefaultRollName, result.Roll.Name)
	assert.Equal(t, int64(0), result.NewBalance)
}

// slowEnricher blocks until its context is done
type slowEnricher struct{}

func (slowEnricher) FetchDisplayImage(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowEnricher) FetchDisplayName(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGachaService_Roll_EnrichmentTimeout(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	ledger := new(MockLedgerService)
	svc := NewGachaService(m.factory, ledger, slowEnricher{}, fixedOutcomeSource(), 50*time.Millisecond)

	ledger.On("TryDeduct", ctx, "111", RollCost, models.TransactionTypeRoll, mock.Anything).Return(int64(300), nil)
	m.rolls.On("Insert", ctx, mock.Anything).Return(int64(2), nil)
	m.bus.On("Publish", mock.Anything).Return()
	m.uow.On("Commit").Return(nil)

	start := time.Now()
	result, err := svc.Roll(ctx, "111", "g1")

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, result.Degraded)
	assert.Equal(t, DefaultRollName, result.Roll.Name)
}

func TestGachaService_Roll_InsertFailure(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	ledger := new(MockLedgerService)
	enricher := new(MockEnricher)
	svc := NewGachaService(m.factory, ledger, enricher, fixedOutcomeSource(), time.Second)

	ledger.On("TryDeduct", ctx, "111", RollCost, models.TransactionTypeRoll, mock.Anything).Return(int64(400), nil)
	enricher.On("FetchDisplayImage", mock.Anything).Return("https://img.example/1.png", nil)
	enricher.On("FetchDisplayName", mock.Anything).Return("BRAVE OTTER", nil)
	m.rolls.On("Insert", ctx, mock.Anything).Return(int64(0), NewStorageError("insert roll", errors.New("disk full")))

	result, err := svc.Roll(ctx, "111", "g1")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrStorage))
	m.uow.AssertNotCalled(t, "Commit")
	m.bus.AssertNotCalled(t, "Publish", mock.Anything)
}
