package service

import (
	"context"
	"fmt"
	"time"

	"github.com/safend/workorders/internal/db"
	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/repository"
)

type operationalPostService struct {
	posts    repository.OperationalPostRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewOperationalPostService returns the in-process post-sync collaborator.
// Sync replaces the order's projection in one transaction.
func NewOperationalPostService(posts repository.OperationalPostRepo, uow db.UnitOfWork, observers ...UseCaseObserver) OperationalPostService {
	return &operationalPostService{
		posts:    posts,
		uow:      uow,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *operationalPostService) Sync(ctx context.Context, w *domain.WorkOrder) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"record_id": w.RecordID, "code": w.ID}
	defer observe(ctx, s.observer, "ops.sync_posts", startedAt, fields, nil, &err)

	if w.RecordID == "" {
		return fmt.Errorf("work order %s has no record id", w.ID)
	}
	projected := domain.ProjectOperationalPosts(w, s.now())
	fields["posts"] = len(projected)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteOperationalPostRepo(tx).ReplaceForWorkOrder(ctx, w.RecordID, projected)
	})
}

func (s *operationalPostService) List(ctx context.Context) ([]domain.OperationalPost, error) {
	return s.posts.List(ctx)
}

func (s *operationalPostService) ListByWorkOrder(ctx context.Context, recordID string) ([]domain.OperationalPost, error) {
	return s.posts.ListByWorkOrder(ctx, recordID)
}
