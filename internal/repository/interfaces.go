package repository

import (
	"context"
	"errors"
	"time"

	"github.com/safend/workorders/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// WorkOrderFilter narrows List. Zero values match everything.
type WorkOrderFilter struct {
	Status     domain.WorkOrderStatus
	SyncStatus []domain.SyncStatus
	Client     string
}

// WorkOrderRepo stores the work order aggregate: the order row plus its
// posts and staff requirements. Create and Update write several tables and
// should run inside a UnitOfWork.
type WorkOrderRepo interface {
	Create(ctx context.Context, w *domain.WorkOrder) error
	Update(ctx context.Context, w *domain.WorkOrder) error
	GetByRecordID(ctx context.Context, recordID string) (*domain.WorkOrder, error)
	GetByCode(ctx context.Context, code string) (*domain.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) ([]*domain.WorkOrder, error)
	UpdateSyncStatus(ctx context.Context, recordID string, status domain.SyncStatus, syncErr string, at time.Time) error
	Delete(ctx context.Context, recordID string) error
}

// WorkOrderSequenceRepo allocates per-year work order numbers.
type WorkOrderSequenceRepo interface {
	NextWorkOrderSeq(ctx context.Context, year int) (int, error)
}

// OperationalPostRepo stores the operations-side projection of posts.
type OperationalPostRepo interface {
	ReplaceForWorkOrder(ctx context.Context, recordID string, posts []domain.OperationalPost) error
	ListByWorkOrder(ctx context.Context, recordID string) ([]domain.OperationalPost, error)
	List(ctx context.Context) ([]domain.OperationalPost, error)
}
