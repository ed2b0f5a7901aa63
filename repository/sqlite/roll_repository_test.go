package sqlite

import (
	"context"
	"testing"

	"gacha/models"
	"gacha/repository/testutil"
	"gacha/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollRepository_InsertListSearch(t *testing.T) {
	db := testutil.SetupSQLiteDatabase(t)
	ledger := NewLedgerRepository(db)
	repo := NewRollRepository(db)
	ctx := context.Background()

	for _, user := range []string{"alice", "bob"} {
		_, err := ledger.EnsureInitialized(ctx, user, 500)
		require.NoError(t, err)
	}

	otter := testutil.CreateTestRollWithElement("alice", "BRAVE OTTER", models.ElementWater)
	crab := testutil.CreateTestRollWithElement("bob", "LOUD CRAB", models.ElementFire)
	leaf := testutil.CreateTestRollWithElement("alice", "50% LEAF", models.ElementGrass)
	leaf.GuildID = "guild-2"
	for _, roll := range []*models.Roll{otter, crab, leaf} {
		id, err := repo.Insert(ctx, roll)
		require.NoError(t, err)
		assert.Equal(t, roll.ID, id)
	}

	t.Run("list unscoped", func(t *testing.T) {
		rolls, err := repo.ListByOwner(ctx, "alice", "")
		require.NoError(t, err)
		require.Len(t, rolls, 2)
		assert.Equal(t, otter.ID, rolls[0].ID)
		assert.Equal(t, leaf.ID, rolls[1].ID)
		assert.Equal(t, models.ElementGrass, rolls[1].Element)
		assert.False(t, rolls[0].CreatedAt.IsZero())
	})

	t.Run("list scoped", func(t *testing.T) {
		rolls, err := repo.ListByOwner(ctx, "alice", "guild-2")
		require.NoError(t, err)
		require.Len(t, rolls, 1)
		assert.Equal(t, leaf.ID, rolls[0].ID)
	})

	t.Run("search", func(t *testing.T) {
		tests := []struct {
			pattern string
			wantIDs []int64
		}{
			{"Otter", []int64{otter.ID}},
			{"FIRE", []int64{crab.ID}},
			{"%", []int64{leaf.ID}},
			{"_", nil},
			{"zebra", nil},
		}
		for _, tt := range tests {
			rolls, err := repo.Search(ctx, tt.pattern)
			require.NoError(t, err)
			var ids []int64
			for _, r := range rolls {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids, "pattern %q", tt.pattern)
		}
	})

	t.Run("search by id", func(t *testing.T) {
		rolls, err := repo.Search(ctx, "2")
		require.NoError(t, err)
		require.NotEmpty(t, rolls)
		assert.Equal(t, crab.ID, rolls[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		roll, err := repo.GetByID(ctx, crab.ID)
		require.NoError(t, err)
		require.NotNil(t, roll)
		assert.Equal(t, "LOUD CRAB", roll.Name)

		missing, err := repo.GetByID(ctx, 12345)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestRollRepository_UnknownElementIsStorageFailure(t *testing.T) {
	db := testutil.SetupSQLiteDatabase(t)
	ctx := context.Background()

	_, err := NewLedgerRepository(db).EnsureInitialized(ctx, "alice", 500)
	require.NoError(t, err)

	// Bypass the CHECK constraint to simulate a corrupted row. The pragma is
	// per connection, so pin the pool to one.
	db.SetMaxOpenConns(1)
	_, err = db.ExecContext(ctx, `PRAGMA ignore_check_constraints = ON`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		INSERT INTO rolls (owner_id, guild_id, rarity, image_url, name, element, attack, defense, speed, created_at)
		VALUES ('alice', '', 1, '', 'ODD ONE', 'Lightning', 1, 1, 1, 0)
	`)
	require.NoError(t, err)

	_, err = NewRollRepository(db).ListByOwner(ctx, "alice", "")
	assert.ErrorIs(t, err, service.ErrStorage)
}
