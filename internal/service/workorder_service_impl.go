package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/safend/workorders/internal/config"
	"github.com/safend/workorders/internal/contract"
	"github.com/safend/workorders/internal/db"
	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/repository"
	"github.com/safend/workorders/internal/workorder"
)

// WorkOrderOptions tunes a WorkOrderService. Zero values select defaults.
type WorkOrderOptions struct {
	Currency string
	// IDScheme is config.IDSchemeSequence (default) or config.IDSchemeRandom.
	IDScheme string
	// Random generates codes under the random scheme.
	Random workorder.IDGenerator
	Now    func() time.Time
	// Logger receives sync warnings.
	Logger *slog.Logger
}

type workOrderService struct {
	orders   repository.WorkOrderRepo
	syncer   PostSyncer
	uow      db.UnitOfWork
	opts     WorkOrderOptions
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewWorkOrderService(
	orders repository.WorkOrderRepo,
	syncer PostSyncer,
	uow db.UnitOfWork,
	opts WorkOrderOptions,
	observers ...UseCaseObserver,
) WorkOrderService {
	if opts.Currency == "" {
		opts.Currency = workorder.DefaultCurrency
	}
	if opts.IDScheme == "" {
		opts.IDScheme = config.IDSchemeSequence
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.Random == nil {
		opts.Random = workorder.RandomIDGenerator{Now: opts.Now}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &workOrderService{
		orders:   orders,
		syncer:   syncer,
		uow:      uow,
		opts:     opts,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workOrderService) NewDraft(ctx context.Context, seed workorder.Seed) (w *domain.WorkOrder, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id_scheme": s.opts.IDScheme}
	defer observe(ctx, s.observer, "workorder.new_draft", startedAt, fields, nil, &err)

	if seed.ID != "" {
		return workorder.New(seed, workorder.FixedID(seed.ID)), nil
	}
	if s.opts.IDScheme == config.IDSchemeRandom {
		w = workorder.New(seed, s.opts.Random)
		fields["code"] = w.ID
		return w, nil
	}

	year := s.opts.Now().Year()
	var seq int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		seq, txErr = repository.NewSQLiteWorkOrderSequenceRepo(tx).NextWorkOrderSeq(ctx, year)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("allocating work order code: %w", err)
	}

	w = workorder.New(seed, workorder.FixedID(workorder.FormatWorkOrderID(year, seq)))
	fields["code"] = w.ID
	return w, nil
}

// Submit runs the persist-then-sync saga. The caller's order is never
// modified except that RecordID is set after the first successful save, so
// a resubmit updates the same record.
func (s *workOrderService) Submit(ctx context.Context, req contract.SubmitRequest) (result *contract.SubmitResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	var outcome string
	defer observe(ctx, s.observer, "workorder.submit", startedAt, fields, &outcome, &err)

	if req.Order == nil {
		return nil, &contract.SubmitError{Code: contract.ErrSubmitValidation, Message: "no work order given"}
	}
	fields["code"] = req.Order.ID

	now := s.opts.Now()
	if req.Now != nil {
		now = *req.Now
	}

	sub, verr := workorder.ValidateForSubmit(req.Order, workorder.SubmitOptions{Currency: s.opts.Currency, Now: now})
	if verr != nil {
		se := &contract.SubmitError{Code: contract.ErrSubmitValidation, Message: verr.Error(), Err: verr}
		var ve workorder.ValidationErrors
		if errors.As(verr, &ve) {
			se.Fields = ve.Fields()
		}
		return nil, se
	}

	order := sub.Order
	created := order.RecordID == ""
	if created {
		order.RecordID = uuid.New().String()
	}
	order.SyncError = ""
	if order.CreateOperationalPosts {
		order.SyncStatus = domain.SyncPending
	} else {
		order.SyncStatus = domain.SyncNotRequested
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWorkOrderRepo(tx)
		if created {
			return repo.Create(ctx, order)
		}
		return repo.Update(ctx, order)
	})
	if err != nil {
		return nil, &contract.SubmitError{
			Code:    contract.ErrSubmitPersist,
			Message: fmt.Sprintf("saving %s: %v", order.ID, err),
			Err:     err,
		}
	}

	req.Order.RecordID = order.RecordID
	fields["record_id"] = order.RecordID
	fields["created"] = created
	fields["posts"] = len(order.Posts)
	fields["warnings"] = len(sub.Warnings)

	result = &contract.SubmitResult{
		Outcome:    contract.OutcomeSaved,
		RecordID:   order.RecordID,
		Code:       order.ID,
		Created:    created,
		SyncStatus: order.SyncStatus,
		Warnings:   sub.Warnings,
		Order:      order,
	}
	outcome = OutcomeSuccess
	if !order.CreateOperationalPosts {
		return result, nil
	}

	if syncErr := s.syncAndRecord(ctx, order); syncErr != nil {
		result.Outcome = contract.OutcomePartial
		result.SyncError = syncErr.Error()
		outcome = OutcomePartial
	}
	result.SyncStatus = order.SyncStatus
	return result, nil
}

// syncAndRecord projects order and stores the resulting sync status on the
// record and on order. It returns the sync failure, if any.
func (s *workOrderService) syncAndRecord(ctx context.Context, order *domain.WorkOrder) error {
	at := s.opts.Now()
	syncErr := s.syncer.Sync(ctx, order)
	status := domain.SyncSynced
	msg := ""
	if syncErr != nil {
		status = domain.SyncFailed
		msg = syncErr.Error()
		s.logger.WarnContext(ctx, "operational post sync failed",
			"record_id", order.RecordID,
			"code", order.ID,
			"error", msg,
		)
	}

	if err := s.orders.UpdateSyncStatus(ctx, order.RecordID, status, msg, at); err != nil {
		// The record stays pending, which ListPendingSync reports.
		s.logger.WarnContext(ctx, "recording sync status failed",
			"record_id", order.RecordID,
			"code", order.ID,
			"error", err.Error(),
		)
		order.SyncStatus = domain.SyncPending
		if syncErr != nil {
			return syncErr
		}
		return fmt.Errorf("recording sync status: %w", err)
	}

	order.SyncStatus = status
	order.SyncError = msg
	if status == domain.SyncSynced {
		order.SyncedAt = &at
	}
	return syncErr
}

// RetrySync re-runs the projection for a saved order. Already-synced orders
// are left alone.
func (s *workOrderService) RetrySync(ctx context.Context, recordID string) (result *contract.RetrySyncResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"record_id": recordID}
	var outcome string
	defer observe(ctx, s.observer, "workorder.retry_sync", startedAt, fields, &outcome, &err)

	order, err := s.orders.GetByRecordID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.RetryError{Code: contract.ErrRetryNotFound, Message: fmt.Sprintf("no work order with record id %s", recordID)}
		}
		return nil, err
	}
	fields["code"] = order.ID

	if !order.CreateOperationalPosts {
		return nil, &contract.RetryError{
			Code:    contract.ErrRetryNotRequested,
			Message: fmt.Sprintf("%s does not create operational posts", order.ID),
		}
	}

	result = &contract.RetrySyncResult{
		RecordID:   order.RecordID,
		Code:       order.ID,
		SyncStatus: order.SyncStatus,
		PostCount:  len(order.Posts),
	}
	outcome = OutcomeSuccess
	if order.SyncStatus == domain.SyncSynced {
		result.AlreadySynced = true
		return result, nil
	}

	if syncErr := s.syncAndRecord(ctx, order); syncErr != nil {
		result.SyncError = syncErr.Error()
		outcome = OutcomePartial
	}
	result.SyncStatus = order.SyncStatus
	return result, nil
}

func (s *workOrderService) Get(ctx context.Context, recordID string) (*domain.WorkOrder, error) {
	return s.orders.GetByRecordID(ctx, recordID)
}

func (s *workOrderService) GetByCode(ctx context.Context, code string) (*domain.WorkOrder, error) {
	return s.orders.GetByCode(ctx, code)
}

func (s *workOrderService) List(ctx context.Context, filter repository.WorkOrderFilter) ([]*domain.WorkOrder, error) {
	return s.orders.List(ctx, filter)
}

func (s *workOrderService) ListPendingSync(ctx context.Context) ([]*domain.WorkOrder, error) {
	return s.orders.List(ctx, repository.WorkOrderFilter{
		SyncStatus: []domain.SyncStatus{domain.SyncPending, domain.SyncFailed},
	})
}
