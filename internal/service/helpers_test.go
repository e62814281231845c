package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/safend/workorders/internal/db"
	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/repository"
	"github.com/safend/workorders/internal/testutil"
	"github.com/safend/workorders/internal/workorder"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// flakySyncer fails while err is set and otherwise delegates to next.
type flakySyncer struct {
	next  PostSyncer
	err   error
	calls int
}

func (f *flakySyncer) Sync(ctx context.Context, w *domain.WorkOrder) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return f.next.Sync(ctx, w)
}

type testEnv struct {
	db     *sql.DB
	orders *repository.SQLiteWorkOrderRepo
	posts  *repository.SQLiteOperationalPostRepo
	ops    OperationalPostService
	syncer *flakySyncer
	svc    WorkOrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithUoW(t, nil)
}

// newTestEnvWithUoW builds services over an in-memory database. A nil uow
// selects the real SQLite unit of work.
func newTestEnvWithUoW(t *testing.T, uow func(*sql.DB) db.UnitOfWork) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	var unit db.UnitOfWork = testutil.NewTestUoW(database)
	if uow != nil {
		unit = uow(database)
	}

	env := &testEnv{
		db:     database,
		orders: repository.NewSQLiteWorkOrderRepo(database),
		posts:  repository.NewSQLiteOperationalPostRepo(database),
	}
	env.ops = NewOperationalPostService(env.posts, testutil.NewTestUoW(database))
	env.syncer = &flakySyncer{next: env.ops}
	env.svc = NewWorkOrderService(env.orders, env.syncer, unit, WorkOrderOptions{
		Currency: "₹",
		Now:      func() time.Time { return fixedNow },
	})
	return env
}

// validDraft opens a draft that passes submission with one post.
func validDraft(t *testing.T, env *testEnv) *domain.WorkOrder {
	t.Helper()
	w, err := env.svc.NewDraft(context.Background(), workorder.Seed{
		Client:    "Acme",
		Service:   "Guarding",
		StartDate: "2025-01-01",
		Value:     "150000",
	})
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	w = workorder.UpdatePostField(w, 0, workorder.PostName, "Gate A")
	return workorder.UpdatePostField(w, 0, workorder.PostAddress, "123 Main St")
}

var errSyncDown = errors.New("operations module unavailable")
