package contract

import (
	"time"

	"github.com/safend/workorders/internal/domain"
)

type SubmitRequest struct {
	Order *domain.WorkOrder
	Now   *time.Time
}

func NewSubmitRequest(order *domain.WorkOrder) SubmitRequest {
	return SubmitRequest{Order: order}
}

// SubmitOutcome distinguishes a complete save from a save whose operational
// projection did not apply.
type SubmitOutcome string

const (
	OutcomeSaved   SubmitOutcome = "saved"
	OutcomePartial SubmitOutcome = "partial"
)

type SubmitResult struct {
	Outcome    SubmitOutcome
	RecordID   string
	Code       string
	Created    bool
	SyncStatus domain.SyncStatus
	// SyncError is set only for OutcomePartial.
	SyncError string
	Warnings  []string
	Order     *domain.WorkOrder
}

// Partial reports whether the work order is saved but not yet projected.
func (r *SubmitResult) Partial() bool {
	return r.Outcome == OutcomePartial
}

type SubmitErrorCode string

const (
	ErrSubmitValidation SubmitErrorCode = "SUBMIT_VALIDATION_FAILED"
	ErrSubmitPersist    SubmitErrorCode = "SUBMIT_PERSIST_FAILED"
)

// SubmitError is returned when nothing was saved.
type SubmitError struct {
	Code    SubmitErrorCode
	Message string
	// Fields lists offending field paths for ErrSubmitValidation.
	Fields []string
	Err    error
}

func (e *SubmitError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
