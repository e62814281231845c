// Package workorder builds, edits and validates the WorkOrder aggregate.
// Every edit is a pure function: it returns a new aggregate and leaves its
// input untouched. Out-of-range indices are ignored.
package workorder

import (
	"github.com/safend/workorders/internal/domain"
)

// Seed carries the fields known when a work order is opened for editing.
// Zero values mean "use the default"; the pointer fields distinguish an
// explicit false from absence.
type Seed struct {
	ID           string
	RecordID     string
	Client       string
	Service      string
	QuotationRef string
	AgreementRef string
	StartDate    string
	EndDate      string
	Value        string
	Status       domain.WorkOrderStatus

	BillingCycle  domain.BillingCycle
	BillingRate   domain.BillingRate
	InvoiceDueDay domain.InvoiceDueDay
	GSTInclusive  *bool

	CreateOperationalPosts *bool

	DocumentURL    string
	ClientApproval string

	Posts []domain.SecurityPost
}

// Defaults applied by New when the seed leaves a field empty.
const (
	DefaultStatus        = domain.StatusDraft
	DefaultBillingCycle  = domain.BillingMonthly
	DefaultBillingRate   = domain.RateFixed
	DefaultInvoiceDueDay = domain.DueDay30
	DefaultDutyType      = domain.Duty8H
	DefaultPostType      = domain.PostPermanent
)

// New opens a work order from seed. A seed without an ID gets one from ids.
// A seed without posts gets a single default post with one default staff
// requirement.
func New(seed Seed, ids IDGenerator) *domain.WorkOrder {
	id := seed.ID
	if id == "" {
		id = ids.WorkOrderID()
	}

	w := &domain.WorkOrder{
		ID:                     id,
		RecordID:               seed.RecordID,
		Client:                 seed.Client,
		Service:                seed.Service,
		QuotationRef:           seed.QuotationRef,
		AgreementRef:           seed.AgreementRef,
		StartDate:              seed.StartDate,
		EndDate:                seed.EndDate,
		Value:                  seed.Value,
		Status:                 domain.Coalesce(seed.Status, DefaultStatus),
		BillingCycle:           domain.Coalesce(seed.BillingCycle, DefaultBillingCycle),
		BillingRate:            domain.Coalesce(seed.BillingRate, DefaultBillingRate),
		InvoiceDueDay:          domain.Coalesce(seed.InvoiceDueDay, DefaultInvoiceDueDay),
		GSTInclusive:           domain.ValueOr(seed.GSTInclusive, false),
		CreateOperationalPosts: domain.ValueOr(seed.CreateOperationalPosts, true),
		DocumentURL:            seed.DocumentURL,
		ClientApproval:         seed.ClientApproval,
		SyncStatus:             domain.SyncNotRequested,
	}

	if len(seed.Posts) == 0 {
		w.Posts = []domain.SecurityPost{DefaultPost(PostCode(w, 0))}
		return w
	}

	w.Posts = make([]domain.SecurityPost, 0, len(seed.Posts))
	for _, p := range seed.Posts {
		p = p.Clone()
		if p.Code == "" {
			p.Code = nextPostCode(w)
		}
		p.Type = domain.Coalesce(p.Type, DefaultPostType)
		p.DutyType = domain.Coalesce(p.DutyType, DefaultDutyType)
		p.Location.Digipin = domain.NormalizeDigipin(p.Location.Digipin)
		if len(p.RequiredStaff) == 0 {
			p.RequiredStaff = []domain.StaffRequirement{DefaultStaff()}
		}
		w.Posts = append(w.Posts, p)
	}
	return w
}

// DefaultPost is the post added by the form: permanent, 8H, no location
// yet, one day-shift guard.
func DefaultPost(code string) domain.SecurityPost {
	return domain.SecurityPost{
		Code:          code,
		Type:          DefaultPostType,
		DutyType:      DefaultDutyType,
		RequiredStaff: []domain.StaffRequirement{DefaultStaff()},
	}
}

// DefaultStaff is the first requirement of a fresh post: one guard on the
// 06:00-14:00 day shift, every day.
func DefaultStaff() domain.StaffRequirement {
	return domain.StaffRequirement{
		Role:      domain.RoleSecurityGuard,
		Count:     1,
		Shift:     domain.ShiftDay,
		StartTime: "06:00",
		EndTime:   "14:00",
		Days:      append([]domain.Weekday(nil), domain.AllWeekdays...),
	}
}

// AdditionalStaff is the requirement appended by AddStaffRequirement: one
// guard on the 22:00-06:00 night shift, every day.
func AdditionalStaff() domain.StaffRequirement {
	return domain.StaffRequirement{
		Role:      domain.RoleSecurityGuard,
		Count:     1,
		Shift:     domain.ShiftNight,
		StartTime: "22:00",
		EndTime:   "06:00",
		Days:      append([]domain.Weekday(nil), domain.AllWeekdays...),
	}
}

// AddPost appends a default post with the next post code.
func AddPost(w *domain.WorkOrder) *domain.WorkOrder {
	return Apply(w, NewPost{})
}

// RemovePost removes the post at index unless it is the last one.
func RemovePost(w *domain.WorkOrder, index int) *domain.WorkOrder {
	return Apply(w, DropPost{Post: index})
}

// AddStaffRequirement appends a night-shift requirement to the post.
func AddStaffRequirement(w *domain.WorkOrder, postIndex int) *domain.WorkOrder {
	return Apply(w, NewStaff{Post: postIndex})
}

// RemoveStaffRequirement removes a requirement unless it is the post's last one.
func RemoveStaffRequirement(w *domain.WorkOrder, postIndex, staffIndex int) *domain.WorkOrder {
	return Apply(w, DropStaff{Post: postIndex, Staff: staffIndex})
}

// ToggleStaffDay adds day to the schedule when selected, removes it otherwise.
func ToggleStaffDay(w *domain.WorkOrder, postIndex, staffIndex int, day domain.Weekday, selected bool) *domain.WorkOrder {
	return Apply(w, SetStaffDay{Post: postIndex, Staff: staffIndex, Day: day, Selected: selected})
}
