package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/giftbox/internal/db"
)

// FailingUoW runs a real transaction but makes the FailOn-th write (1-based)
// return Err, so callers can assert that earlier writes were rolled back.
// Reads are never intercepted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	// Writes is how many ExecContext calls the last transaction attempted.
	Writes int
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.Writes = 0
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Writes++
	if f.uow.Writes == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
