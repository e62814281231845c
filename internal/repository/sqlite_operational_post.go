package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/safend/workorders/internal/db"
	"github.com/safend/workorders/internal/domain"
)

// SQLiteOperationalPostRepo implements OperationalPostRepo using a SQLite database.
type SQLiteOperationalPostRepo struct {
	db db.DBTX
}

// NewSQLiteOperationalPostRepo creates a new SQLiteOperationalPostRepo.
func NewSQLiteOperationalPostRepo(conn db.DBTX) *SQLiteOperationalPostRepo {
	return &SQLiteOperationalPostRepo{db: conn}
}

const operationalPostColumns = `id, work_order_id, work_order_code, post_code, name, client, address, digipin,
	post_type, duty_type, headcount, shifts, start_date, end_date, status, created_at, updated_at`

// ReplaceForWorkOrder makes posts the complete projection of the work order.
// Rows are upserted by post code so an existing row keeps its id and
// created_at; rows whose post code is no longer present are removed.
// Running it twice with the same input leaves the table unchanged.
func (r *SQLiteOperationalPostRepo) ReplaceForWorkOrder(ctx context.Context, recordID string, posts []domain.OperationalPost) error {
	upsert := `INSERT INTO operational_posts (` + operationalPostColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (work_order_id, post_code) DO UPDATE SET
			work_order_code = excluded.work_order_code,
			name = excluded.name,
			client = excluded.client,
			address = excluded.address,
			digipin = excluded.digipin,
			post_type = excluded.post_type,
			duty_type = excluded.duty_type,
			headcount = excluded.headcount,
			shifts = excluded.shifts,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			updated_at = excluded.updated_at`

	codes := make([]any, 0, len(posts)+1)
	codes = append(codes, recordID)
	for _, p := range posts {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.db.ExecContext(ctx, upsert,
			id,
			recordID,
			p.WorkOrderCode,
			p.PostCode,
			p.Name,
			p.Client,
			p.Address,
			p.Digipin,
			string(p.Type),
			string(p.DutyType),
			p.Headcount,
			joinShifts(p.Shifts),
			p.StartDate,
			nullableString(p.EndDate),
			string(p.Status),
			formatTime(p.CreatedAt),
			formatTime(p.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("upserting operational post %s: %w", p.PostCode, err)
		}
		codes = append(codes, p.PostCode)
	}

	stale := `DELETE FROM operational_posts WHERE work_order_id = ?`
	if len(posts) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(posts)), ", ")
		stale += ` AND post_code NOT IN (` + marks + `)`
	}
	if _, err := r.db.ExecContext(ctx, stale, codes...); err != nil {
		return fmt.Errorf("removing stale operational posts of %s: %w", recordID, err)
	}
	return nil
}

func (r *SQLiteOperationalPostRepo) ListByWorkOrder(ctx context.Context, recordID string) ([]domain.OperationalPost, error) {
	query := `SELECT ` + operationalPostColumns + ` FROM operational_posts
		WHERE work_order_id = ? ORDER BY post_code`
	return r.list(ctx, query, recordID)
}

func (r *SQLiteOperationalPostRepo) List(ctx context.Context) ([]domain.OperationalPost, error) {
	query := `SELECT ` + operationalPostColumns + ` FROM operational_posts
		ORDER BY work_order_code, post_code`
	return r.list(ctx, query)
}

func (r *SQLiteOperationalPostRepo) list(ctx context.Context, query string, args ...any) ([]domain.OperationalPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing operational posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.OperationalPost
	for rows.Next() {
		p, err := scanOperationalPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operational posts: %w", err)
	}
	return posts, nil
}

func scanOperationalPost(row rowScanner) (domain.OperationalPost, error) {
	var p domain.OperationalPost
	var postType, dutyType, shifts, status, createdAt, updatedAt string
	var endDate sql.NullString
	err := row.Scan(
		&p.ID, &p.WorkOrderRecordID, &p.WorkOrderCode, &p.PostCode, &p.Name, &p.Client,
		&p.Address, &p.Digipin, &postType, &dutyType, &p.Headcount, &shifts,
		&p.StartDate, &endDate, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return p, fmt.Errorf("scanning operational post: %w", err)
	}
	p.EndDate = endDate.String
	p.Type = domain.PostType(postType)
	p.DutyType = domain.DutyType(dutyType)
	p.Shifts = splitShifts(shifts)
	p.Status = domain.OperationalPostStatus(status)

	var parseErr error
	if p.CreatedAt, parseErr = parseTime(createdAt); parseErr != nil {
		return p, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if p.UpdatedAt, parseErr = parseTime(updatedAt); parseErr != nil {
		return p, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
