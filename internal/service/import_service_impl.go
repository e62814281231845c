package service

import (
	"context"
	"fmt"
	"time"

	"github.com/safend/workorders/internal/contract"
	"github.com/safend/workorders/internal/importer"
)

type importService struct {
	orders   WorkOrderService
	observer UseCaseObserver
}

// NewImportService imports work order files through orders, so imported
// orders get codes, validation and post sync exactly like hand-entered ones.
func NewImportService(orders WorkOrderService, observers ...UseCaseObserver) ImportService {
	return &importService{
		orders:   orders,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

// importSchema validates the whole file before saving anything. Orders are
// then saved one at a time; a persist failure stops the import and leaves
// the orders before it saved.
func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"orders": len(schema.WorkOrders)}
	var outcome string
	defer observe(ctx, s.observer, "workorder.import", startedAt, fields, &outcome, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	result = &ImportResult{}
	for i, seed := range importer.Convert(schema) {
		order, err := s.orders.NewDraft(ctx, seed)
		if err != nil {
			return result, fmt.Errorf("work order %d of %d: %w", i+1, len(schema.WorkOrders), err)
		}
		submitted, err := s.orders.Submit(ctx, contract.NewSubmitRequest(order))
		if err != nil {
			return result, fmt.Errorf("work order %d of %d (%s): %w", i+1, len(schema.WorkOrders), order.ID, err)
		}
		result.Submitted = append(result.Submitted, submitted)
	}

	fields["partial"] = result.Partial()
	outcome = OutcomeSuccess
	if result.Partial() > 0 {
		outcome = OutcomePartial
	}
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
