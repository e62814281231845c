package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/safend/workorders/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func insertSequence(ctx context.Context, tx db.DBTX, year, next int) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO work_order_sequences (year, next_seq) VALUES (?, ?)`, year, next)
	return err
}

func sequenceExists(t *testing.T, database *sql.DB, year int) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM work_order_sequences WHERE year = ?`, year).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertSequence(ctx, tx, 2025, 1)
	})
	require.NoError(t, err)

	assert.True(t, sequenceExists(t, database, 2025), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertSequence(ctx, tx, 2026, 1); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.False(t, sequenceExists(t, database, 2026), "row should not exist after rollback")
}

func TestWithinTx_ReturnsCallbackErrorUnwrapped(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	errPostInsert := errors.New("post insert failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return errPostInsert
	})
	assert.Same(t, errPostInsert, err)
}

func TestWithinTx_CanceledContextNeverRunsCallback(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "opening work order transaction")
	assert.False(t, ran)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertSequence(ctx, tx, 2027, 1)
			panic("boom")
		})
	})

	assert.False(t, sequenceExists(t, database, 2027), "row should not exist after panic rollback")
}

func TestMigrate_IsRepeatable(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO security_posts (work_order_id, position, code, name, address)
		VALUES ('missing', 0, 'P-0001-01', 'Gate', 'Somewhere')`)
	assert.Error(t, err, "post without a parent work order must be rejected")
}

func TestOpenDB_FileBacked(t *testing.T) {
	path := t.TempDir() + "/nested/safend.db"
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
