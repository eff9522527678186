package db

import (
	"context"
	"database/sql"
)

// DBTX is what the journal repositories query through. Inserts from the
// analytics sink use the pooled *sql.DB, while prune runs on the *sql.Tx of
// a unit of work so the delete and the settings stamp commit together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
