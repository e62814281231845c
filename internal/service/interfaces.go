package service

import (
	"context"

	"github.com/safend/workorders/internal/contract"
	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/importer"
	"github.com/safend/workorders/internal/repository"
	"github.com/safend/workorders/internal/workorder"
)

type WorkOrderService interface {
	// NewDraft opens an unsaved work order with a freshly assigned code.
	NewDraft(ctx context.Context, seed workorder.Seed) (*domain.WorkOrder, error)
	// Submit validates, persists and, when requested, projects operational
	// posts. A failed projection is a partial result, not an error.
	Submit(ctx context.Context, req contract.SubmitRequest) (*contract.SubmitResult, error)
	RetrySync(ctx context.Context, recordID string) (*contract.RetrySyncResult, error)
	Get(ctx context.Context, recordID string) (*domain.WorkOrder, error)
	GetByCode(ctx context.Context, code string) (*domain.WorkOrder, error)
	List(ctx context.Context, filter repository.WorkOrderFilter) ([]*domain.WorkOrder, error)
	// ListPendingSync returns saved orders whose projection is pending or failed.
	ListPendingSync(ctx context.Context) ([]*domain.WorkOrder, error)
}

// PostSyncer projects a saved work order into operational posts. The order
// carries its RecordID.
type PostSyncer interface {
	Sync(ctx context.Context, w *domain.WorkOrder) error
}

type OperationalPostService interface {
	PostSyncer
	List(ctx context.Context) ([]domain.OperationalPost, error)
	ListByWorkOrder(ctx context.Context, recordID string) ([]domain.OperationalPost, error)
}

// ImportResult holds the outcome of a work order import.
type ImportResult struct {
	Submitted []*contract.SubmitResult
}

// Partial counts imported orders whose projection failed.
func (r *ImportResult) Partial() int {
	n := 0
	for _, s := range r.Submitted {
		if s.Partial() {
			n++
		}
	}
	return n
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
