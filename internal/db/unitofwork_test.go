package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/nuclea/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createdAt = "2025-09-01T09:00:00Z"

func openStore(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertWork(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO works (id, student_id, title, text, created_at) VALUES (?, 'stu-1', 'Essay', 'text', ?)`,
		id, createdAt)
	return err
}

func insertAnalysis(ctx context.Context, tx db.DBTX, id, workID string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (id, work_id, mode, score_structure, score_clarity, score_evidence,
			score_originality, score_coherence, result_json, created_at)
		 VALUES (?, ?, 'highschool', 3, 3, 3, 3, 3, '{}', ?)`,
		id, workID, createdAt)
	return err
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestWithinTx_CommitsWorkAndAnalysisTogether(t *testing.T) {
	database, uow := openStore(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertWork(ctx, tx, "w1"); err != nil {
			return err
		}
		return insertAnalysis(ctx, tx, "a1", "w1")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, database, "works"))
	assert.Equal(t, 1, countRows(t, database, "analyses"))
}

func TestWithinTx_ErrorDiscardsWorkAndAnalysis(t *testing.T) {
	database, uow := openStore(t)
	errDiskFull := errors.New("disk full")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertWork(ctx, tx, "w2"); err != nil {
			return err
		}
		if err := insertAnalysis(ctx, tx, "a2", "w2"); err != nil {
			return err
		}
		return errDiskFull
	})
	require.ErrorIs(t, err, errDiskFull)

	assert.Zero(t, countRows(t, database, "works"))
	assert.Zero(t, countRows(t, database, "analyses"))
}

func TestWithinTx_FailedAnalysisInsertDiscardsWork(t *testing.T) {
	database, uow := openStore(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertWork(ctx, tx, "w3"); err != nil {
			return err
		}
		// Out-of-range score violates the column CHECK.
		_, err := tx.ExecContext(ctx,
			`INSERT INTO analyses (id, work_id, mode, score_structure, score_clarity, score_evidence,
				score_originality, score_coherence, result_json, created_at)
			 VALUES ('a3', 'w3', 'highschool', 9, 3, 3, 3, 3, '{}', ?)`, createdAt)
		return err
	})
	require.Error(t, err)

	assert.Zero(t, countRows(t, database, "works"))
}

func TestWithinTx_PanicDiscardsWritesAndRepanics(t *testing.T) {
	database, uow := openStore(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertWork(ctx, tx, "w4")
			panic("boom")
		})
	})

	assert.Zero(t, countRows(t, database, "works"))

	// The connection is usable again after the panic.
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertWork(ctx, tx, "w5")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, database, "works"))
}

func TestWithinTx_CanceledContextNeverRuns(t *testing.T) {
	_, uow := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
