package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"gacha/database"

	"github.com/stretchr/testify/require"
)

// SetupSQLiteDatabase creates a migrated SQLite file in a per-test temp dir.
// A file is used instead of :memory: so every pooled connection sees the same data.
func SetupSQLiteDatabase(t *testing.T) *sql.DB {
	path := filepath.Join(t.TempDir(), "gacha_test.sqlite")

	require.NoError(t, database.RunSQLiteMigrations(path))

	db, err := database.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
