package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/safend/workorders/internal/domain"
)

var testCodeCounter atomic.Int64

// WorkOrderOption customises a fixture built by NewTestWorkOrder.
type WorkOrderOption func(*domain.WorkOrder)

func WithCode(code string) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.ID = code
	}
}

func WithStatus(s domain.WorkOrderStatus) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Status = s
	}
}

func WithSyncStatus(s domain.SyncStatus) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.SyncStatus = s
	}
}

func WithEndDate(d string) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.EndDate = d
	}
}

func WithCreatedAt(t time.Time) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.CreatedAt = t
		w.UpdatedAt = t
	}
}

func WithoutRecordID() WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.RecordID = ""
	}
}

// WithPost appends a post. Its code is derived from the order code when empty.
func WithPost(p domain.SecurityPost) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		if p.Code == "" {
			p.Code = fmt.Sprintf("P-%s-%02d", w.Sequence(), len(w.Posts)+1)
		}
		w.Posts = append(w.Posts, p)
	}
}

// NewTestPost returns a permanent 8H post with one day-shift guard.
func NewTestPost(name string, staff ...domain.StaffRequirement) domain.SecurityPost {
	if len(staff) == 0 {
		staff = []domain.StaffRequirement{NewTestStaff(domain.RoleSecurityGuard, 1, domain.ShiftDay)}
	}
	return domain.SecurityPost{
		Name:          name,
		Type:          domain.PostPermanent,
		Location:      domain.Location{Address: name + " Road, Pune", Digipin: "4FK-8M2-L9PT"},
		DutyType:      domain.Duty8H,
		RequiredStaff: staff,
	}
}

func NewTestStaff(role domain.StaffRole, count int, shift domain.Shift) domain.StaffRequirement {
	return domain.StaffRequirement{
		Role:      role,
		Count:     count,
		Shift:     shift,
		StartTime: "06:00",
		EndTime:   "14:00",
		Days:      append([]domain.Weekday(nil), domain.AllWeekdays...),
	}
}

// NewTestWorkOrder returns a persisted-shape work order that passes
// submission validation. Without a WithPost option it carries one post.
func NewTestWorkOrder(client string, opts ...WorkOrderOption) *domain.WorkOrder {
	now := time.Now().UTC()
	n := testCodeCounter.Add(1)
	w := &domain.WorkOrder{
		ID:                     fmt.Sprintf("WO-2025-%04d", n),
		RecordID:               uuid.New().String(),
		Client:                 client,
		Service:                "Manned guarding",
		StartDate:              "2025-01-01",
		Value:                  "150000",
		DisplayValue:           "₹150000.00",
		Status:                 domain.StatusDraft,
		BillingCycle:           domain.BillingMonthly,
		BillingRate:            domain.RateFixed,
		InvoiceDueDay:          domain.DueDay30,
		CreateOperationalPosts: true,
		SyncStatus:             domain.SyncNotRequested,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if len(w.Posts) == 0 {
		WithPost(NewTestPost("Main Gate"))(w)
	}
	return w
}
