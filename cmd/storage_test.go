package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gacha/config"
	"gacha/events"
	"gacha/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "bot.sqlite")

	bus := events.NewBus()
	created := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, e events.Event) {
		created <- e
	})

	factory, closeStorage, err := openStorage(ctx, cfg, bus)
	require.NoError(t, err)
	defer closeStorage()

	ledger := service.NewLedgerService(factory)
	isNew, err := ledger.EnsureInitialized(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.True(t, isNew)

	select {
	case e := <-created:
		assert.Equal(t, "alice", e.(events.UserCreatedEvent).UserID)
	case <-time.After(time.Second):
		t.Fatal("user_created event was not emitted")
	}

	balance, err := ledger.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, service.StartingBalance, balance)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.StorageDriver = "mysql"

	_, _, err := openStorage(context.Background(), cfg, events.NewBus())
	assert.Error(t, err)
}

func TestMigrationTarget(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.StorageDriver = config.DriverPostgres
	cfg.DatabaseURL = "postgres://u:p@localhost:5432"
	cfg.DatabaseName = "gacha"

	target := migrationTarget(cfg)

	assert.Equal(t, config.DriverPostgres, target.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/gacha?sslmode=disable", target.DatabaseURL)
	assert.Equal(t, cfg.SQLitePath, target.SQLitePath)
}
