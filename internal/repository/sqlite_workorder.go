package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/safend/workorders/internal/db"
	"github.com/safend/workorders/internal/domain"
)

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
// Posts and staff requirements are stored positionally and rewritten as a
// whole on every Update.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

// NewSQLiteWorkOrderRepo creates a new SQLiteWorkOrderRepo.
func NewSQLiteWorkOrderRepo(conn db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: conn}
}

const workOrderColumns = `record_id, code, client, service, quotation_ref, agreement_ref,
	start_date, end_date, value, display_value, status,
	billing_cycle, billing_rate, invoice_due_day, gst_inclusive, create_operational_posts,
	document_url, client_approval, sync_status, sync_error, synced_at, created_at, updated_at`

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, w *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.RecordID,
		w.ID,
		w.Client,
		w.Service,
		w.QuotationRef,
		w.AgreementRef,
		w.StartDate,
		nullableString(w.EndDate),
		w.Value,
		w.DisplayValue,
		string(w.Status),
		string(w.BillingCycle),
		string(w.BillingRate),
		string(w.InvoiceDueDay),
		boolToInt(w.GSTInclusive),
		boolToInt(w.CreateOperationalPosts),
		w.DocumentURL,
		w.ClientApproval,
		string(syncStatusOrDefault(w.SyncStatus)),
		w.SyncError,
		nullableTime(w.SyncedAt),
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work order %s: %w", w.ID, err)
	}
	return r.insertPosts(ctx, w)
}

func (r *SQLiteWorkOrderRepo) Update(ctx context.Context, w *domain.WorkOrder) error {
	query := `UPDATE work_orders SET code = ?, client = ?, service = ?, quotation_ref = ?, agreement_ref = ?,
			start_date = ?, end_date = ?, value = ?, display_value = ?, status = ?,
			billing_cycle = ?, billing_rate = ?, invoice_due_day = ?, gst_inclusive = ?, create_operational_posts = ?,
			document_url = ?, client_approval = ?, sync_status = ?, sync_error = ?, synced_at = ?, updated_at = ?
		WHERE record_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Client,
		w.Service,
		w.QuotationRef,
		w.AgreementRef,
		w.StartDate,
		nullableString(w.EndDate),
		w.Value,
		w.DisplayValue,
		string(w.Status),
		string(w.BillingCycle),
		string(w.BillingRate),
		string(w.InvoiceDueDay),
		boolToInt(w.GSTInclusive),
		boolToInt(w.CreateOperationalPosts),
		w.DocumentURL,
		w.ClientApproval,
		string(syncStatusOrDefault(w.SyncStatus)),
		w.SyncError,
		nullableTime(w.SyncedAt),
		formatTime(w.UpdatedAt),
		w.RecordID,
	)
	if err != nil {
		return fmt.Errorf("updating work order %s: %w", w.ID, err)
	}
	if err := requireAffected(res, "work order", w.RecordID); err != nil {
		return err
	}

	// Staff rows go with their posts through the composite foreign key.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM security_posts WHERE work_order_id = ?`, w.RecordID); err != nil {
		return fmt.Errorf("clearing posts of %s: %w", w.ID, err)
	}
	return r.insertPosts(ctx, w)
}

func (r *SQLiteWorkOrderRepo) insertPosts(ctx context.Context, w *domain.WorkOrder) error {
	postQuery := `INSERT INTO security_posts (work_order_id, position, code, name, post_type, address, digipin, duty_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	staffQuery := `INSERT INTO staff_requirements (work_order_id, post_position, position, role, count, shift, start_time, end_time, days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range w.Posts {
		p := &w.Posts[i]
		_, err := r.db.ExecContext(ctx, postQuery,
			w.RecordID, i, p.Code, p.Name, string(p.Type),
			p.Location.Address, p.Location.Digipin, string(p.DutyType),
		)
		if err != nil {
			return fmt.Errorf("inserting post %s: %w", p.Code, err)
		}
		for j, s := range p.RequiredStaff {
			_, err := r.db.ExecContext(ctx, staffQuery,
				w.RecordID, i, j, string(s.Role), s.Count, string(s.Shift),
				s.StartTime, s.EndTime, joinDays(s.Days),
			)
			if err != nil {
				return fmt.Errorf("inserting staff requirement %d of post %s: %w", j, p.Code, err)
			}
		}
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) GetByRecordID(ctx context.Context, recordID string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE record_id = ?`
	return r.getOne(ctx, query, recordID)
}

// GetByCode looks a work order up by its WO code, ignoring case.
func (r *SQLiteWorkOrderRepo) GetByCode(ctx context.Context, code string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE UPPER(code) = UPPER(?)`
	return r.getOne(ctx, query, code)
}

func (r *SQLiteWorkOrderRepo) getOne(ctx context.Context, query string, arg string) (*domain.WorkOrder, error) {
	w, err := scanWorkOrder(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work order %s: %w", arg, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadPosts(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context, filter WorkOrderFilter) ([]*domain.WorkOrder, error) {
	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(filter.SyncStatus) > 0 {
		marks := make([]string, len(filter.SyncStatus))
		for i, s := range filter.SyncStatus {
			marks[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "sync_status IN ("+strings.Join(marks, ", ")+")")
	}
	if filter.Client != "" {
		where = append(where, "client LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(filter.Client)+"%")
	}

	query := `SELECT ` + workOrderColumns + ` FROM work_orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, code"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}

	var orders []*domain.WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}
	rows.Close()

	// Children are loaded after the cursor is closed; an in-memory database
	// has a single connection.
	for _, w := range orders {
		if err := r.loadPosts(ctx, w); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *SQLiteWorkOrderRepo) UpdateSyncStatus(ctx context.Context, recordID string, status domain.SyncStatus, syncErr string, at time.Time) error {
	var syncedAt *time.Time
	if status == domain.SyncSynced {
		syncedAt = &at
	}
	query := `UPDATE work_orders
		SET sync_status = ?, sync_error = ?, synced_at = COALESCE(?, synced_at), updated_at = ?
		WHERE record_id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), syncErr, nullableTime(syncedAt), formatTime(at), recordID)
	if err != nil {
		return fmt.Errorf("updating sync status of %s: %w", recordID, err)
	}
	return requireAffected(res, "work order", recordID)
}

func (r *SQLiteWorkOrderRepo) Delete(ctx context.Context, recordID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_orders WHERE record_id = ?`, recordID)
	if err != nil {
		return fmt.Errorf("deleting work order %s: %w", recordID, err)
	}
	return requireAffected(res, "work order", recordID)
}

func (r *SQLiteWorkOrderRepo) loadPosts(ctx context.Context, w *domain.WorkOrder) error {
	postRows, err := r.db.QueryContext(ctx,
		`SELECT code, name, post_type, address, digipin, duty_type
		FROM security_posts WHERE work_order_id = ? ORDER BY position`, w.RecordID)
	if err != nil {
		return fmt.Errorf("loading posts of %s: %w", w.ID, err)
	}
	posts := []domain.SecurityPost{}
	for postRows.Next() {
		var p domain.SecurityPost
		var postType, dutyType string
		if err := postRows.Scan(&p.Code, &p.Name, &postType, &p.Location.Address, &p.Location.Digipin, &dutyType); err != nil {
			postRows.Close()
			return fmt.Errorf("scanning post row: %w", err)
		}
		p.Type = domain.PostType(postType)
		p.DutyType = domain.DutyType(dutyType)
		p.RequiredStaff = []domain.StaffRequirement{}
		posts = append(posts, p)
	}
	if err := postRows.Err(); err != nil {
		postRows.Close()
		return fmt.Errorf("iterating posts: %w", err)
	}
	postRows.Close()

	staffRows, err := r.db.QueryContext(ctx,
		`SELECT post_position, role, count, shift, start_time, end_time, days
		FROM staff_requirements WHERE work_order_id = ? ORDER BY post_position, position`, w.RecordID)
	if err != nil {
		return fmt.Errorf("loading staff of %s: %w", w.ID, err)
	}
	defer staffRows.Close()
	for staffRows.Next() {
		var s domain.StaffRequirement
		var postPos int
		var role, shift, days string
		if err := staffRows.Scan(&postPos, &role, &s.Count, &shift, &s.StartTime, &s.EndTime, &days); err != nil {
			return fmt.Errorf("scanning staff row: %w", err)
		}
		if postPos < 0 || postPos >= len(posts) {
			return fmt.Errorf("staff requirement references missing post position %d of %s", postPos, w.ID)
		}
		s.Role = domain.StaffRole(role)
		s.Shift = domain.Shift(shift)
		s.Days = splitDays(days)
		posts[postPos].RequiredStaff = append(posts[postPos].RequiredStaff, s)
	}
	if err := staffRows.Err(); err != nil {
		return fmt.Errorf("iterating staff: %w", err)
	}

	w.Posts = posts
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row rowScanner) (*domain.WorkOrder, error) {
	var w domain.WorkOrder
	var endDate, syncedAt sql.NullString
	var status, cycle, rate, due, syncStatus, createdAt, updatedAt string
	var gst, ops int

	err := row.Scan(
		&w.RecordID, &w.ID, &w.Client, &w.Service, &w.QuotationRef, &w.AgreementRef,
		&w.StartDate, &endDate, &w.Value, &w.DisplayValue, &status,
		&cycle, &rate, &due, &gst, &ops,
		&w.DocumentURL, &w.ClientApproval, &syncStatus, &w.SyncError, &syncedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}

	w.EndDate = endDate.String
	w.Status = domain.WorkOrderStatus(status)
	w.BillingCycle = domain.BillingCycle(cycle)
	w.BillingRate = domain.BillingRate(rate)
	w.InvoiceDueDay = domain.InvoiceDueDay(due)
	w.GSTInclusive = intToBool(gst)
	w.CreateOperationalPosts = intToBool(ops)
	w.SyncStatus = domain.SyncStatus(syncStatus)
	w.SyncedAt = parseNullableTime(syncedAt)

	var parseErr error
	w.CreatedAt, parseErr = parseTime(createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = parseTime(updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &w, nil
}

func syncStatusOrDefault(s domain.SyncStatus) domain.SyncStatus {
	if s == "" {
		return domain.SyncNotRequested
	}
	return s
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
