// Package sqlite implements the repositories on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// queryable is satisfied by both *sql.DB and *sql.Tx
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
