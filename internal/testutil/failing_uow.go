package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/wbs/internal/db"
)

// FaultyUoW runs real transactions but makes the FailOn-th ExecContext call
// inside each one return Err instead of touching the database. Reads pass
// through. Commits counts transactions that reached a successful commit.
type FaultyUoW struct {
	DB      *sql.DB
	FailOn  int32
	Err     error
	Commits atomic.Int32
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &faultyTx{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	u.Commits.Add(1)
	return nil
}

type faultyTx struct {
	db.DBTX
	calls  atomic.Int32
	failOn int32
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.calls.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
