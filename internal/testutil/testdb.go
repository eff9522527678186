package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/giftbox/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory analytics journal with the schema
// migrated. It fails fast when the events table is missing and closes the
// database at test cleanup.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	journal, err := db.OpenDB(db.InMemory)
	require.NoError(t, err, "opening journal")
	t.Cleanup(func() { _ = journal.Close() })

	var n int
	err = journal.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM analytics_events").Scan(&n)
	require.NoError(t, err, "journal schema")
	return journal
}

// NewTestJournal returns a migrated journal together with the unit of work
// that prune runs in.
func NewTestJournal(t testing.TB) (*sql.DB, db.UnitOfWork) {
	t.Helper()
	journal := NewTestDB(t)
	return journal, db.NewSQLiteUnitOfWork(journal)
}
