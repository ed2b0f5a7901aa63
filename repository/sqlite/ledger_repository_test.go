package sqlite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"gacha/events"
	"gacha/models"
	"gacha/repository/testutil"
	"gacha/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_EnsureInitialized(t *testing.T) {
	db := testutil.SetupSQLiteDatabase(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	balance, err := repo.GetBalance(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	created, err := repo.EnsureInitialized(ctx, "alice", 500)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureInitialized(ctx, "alice", 9999)
	require.NoError(t, err)
	assert.False(t, created)

	balance, err = repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestLedgerRepository_TryDeduct(t *testing.T) {
	db := testutil.SetupSQLiteDatabase(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	tests := []struct {
		name        string
		userID      string
		start       int64
		wantOK      bool
		wantBalance int64
	}{
		{"sufficient", "u1", 500, true, 400},
		{"exact", "u2", 100, true, 0},
		{"insufficient", "u3", 99, false, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repo.SetBalance(ctx, tt.userID, tt.start))

			newBalance, ok, err := repo.TryDeduct(ctx, tt.userID, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantBalance, newBalance)
			}

			balance, err := repo.GetBalance(ctx, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, balance)
		})
	}

	_, ok, err := repo.TryDeduct(ctx, "ghost", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, repo.SetBalance(ctx, "u1", -5))
}

func TestLedgerRepository_Concurrency(t *testing.T) {
	db := testutil.SetupSQLiteDatabase(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("concurrent initialization grants once", func(t *testing.T) {
		var createdCount int32
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := repo.EnsureInitialized(ctx, "bob", 500)
				assert.NoError(t, err)
				if created {
					atomic.AddInt32(&createdCount, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), createdCount)
		balance, err := repo.GetBalance(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(500), balance)
	})

	t.Run("two deducts against one roll worth", func(t *testing.T) {
		require.NoError(t, repo.SetBalance(ctx, "racer", 100))

		var successes int32
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, err := repo.TryDeduct(ctx, "racer", 100)
				assert.NoError(t, err)
				if ok {
					atomic.AddInt32(&successes, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), successes)
		balance, err := repo.GetBalance(ctx, "racer")
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})
}

func TestLedgerService_OnSQLite(t *testing.T) {
	db := testutil.SetupSQLiteDatabase(t)
	ctx := context.Background()

	ledger := service.NewLedgerService(NewUnitOfWorkFactory(db, events.NewBus()))

	created, err := ledger.EnsureInitialized(ctx, "alice", "Alice")
	require.NoError(t, err)
	assert.True(t, created)

	newBalance, err := ledger.TryDeduct(ctx, "alice", 100, models.TransactionTypeRoll, map[string]any{"guild_id": "g1"})
	require.NoError(t, err)
	assert.Equal(t, int64(400), newBalance)

	require.NoError(t, ledger.SetBalance(ctx, "alice", 50, map[string]any{"source": "test"}))

	_, err = ledger.TryDeduct(ctx, "alice", 100, models.TransactionTypeRoll, nil)
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)

	history, err := ledger.GetHistory(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, models.TransactionTypeAdjustment, history[0].TransactionType)
	assert.Equal(t, int64(-350), history[0].ChangeAmount)
	assert.Equal(t, models.TransactionTypeRoll, history[1].TransactionType)
	assert.Equal(t, "g1", history[1].TransactionMetadata["guild_id"])
	assert.Equal(t, models.TransactionTypeInitial, history[2].TransactionType)
	assert.Equal(t, "Alice", history[2].TransactionMetadata["username"])
}
