package contract

import "github.com/safend/workorders/internal/domain"

type RetrySyncResult struct {
	RecordID string
	Code     string
	// AlreadySynced is true when the call found nothing to do.
	AlreadySynced bool
	SyncStatus    domain.SyncStatus
	SyncError     string
	PostCount     int
}

type RetryErrorCode string

const (
	ErrRetryNotFound     RetryErrorCode = "RETRY_NOT_FOUND"
	ErrRetryNotRequested RetryErrorCode = "RETRY_NOT_REQUESTED"
)

type RetryError struct {
	Code    RetryErrorCode
	Message string
}

func (e *RetryError) Error() string {
	return string(e.Code) + ": " + e.Message
}
