package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/nuclea/internal/db"
)

// FailOnNthExecUoW returns Err from the FailOn-th write made inside a unit
// of work and rolls the whole unit back. With FailOn 2 a recorded run
// stores its work row and then fails on the analysis row, which must leave
// neither behind. Reads are passed through and never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	// Writes counts the ExecContext calls seen across all units of work.
	Writes atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	var n atomic.Int32
	err = fn(ctx, &failingTx{DBTX: tx, uow: u, n: &n})
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
	n   *atomic.Int32
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Writes.Add(1)
	if f.n.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
