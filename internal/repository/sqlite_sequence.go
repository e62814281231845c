package repository

import (
	"context"
	"fmt"

	"github.com/safend/workorders/internal/db"
)

// SQLiteWorkOrderSequenceRepo allocates per-year work order numbers
// atomically using the work_order_sequences table.
type SQLiteWorkOrderSequenceRepo struct {
	db db.DBTX
}

func NewSQLiteWorkOrderSequenceRepo(conn db.DBTX) *SQLiteWorkOrderSequenceRepo {
	return &SQLiteWorkOrderSequenceRepo{db: conn}
}

// NextWorkOrderSeq returns the next unused number for year. Every allocation
// jumps past the highest WO-<year>-N code already stored, so codes saved
// outside the sequence (imports with an explicit code, the random scheme)
// are never reissued.
func (r *SQLiteWorkOrderSequenceRepo) NextWorkOrderSeq(ctx context.Context, year int) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO work_order_sequences (year, next_seq) VALUES (?, 1)`
	if _, err := r.db.ExecContext(ctx, seedQuery, year); err != nil {
		return 0, fmt.Errorf("seeding work order sequence for %d: %w", year, err)
	}

	prefix := fmt.Sprintf("WO-%d-", year)
	var next int
	allocQuery := `UPDATE work_order_sequences
		SET next_seq = MAX(next_seq, (
			SELECT COALESCE(MAX(CAST(substr(code, length(?) + 1) AS INTEGER)), 0) + 1
			FROM work_orders
			WHERE code LIKE ? || '%'
		)) + 1
		WHERE year = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, prefix, prefix, year).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating work order number for %d: %w", year, err)
	}
	return next, nil
}
