package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories query through: the pooled *sql.DB for reads and
// single statements, or the *sql.Tx handed out by a UnitOfWork for saves.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
