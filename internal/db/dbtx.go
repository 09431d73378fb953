package db

import (
	"context"
	"database/sql"
)

// DBTX is what the work and analysis repositories query through. Passing
// the *sql.DB writes immediately; passing the tx handed to a TxFunc keeps
// the writes inside that unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
