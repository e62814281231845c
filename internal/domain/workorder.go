package domain

import (
	"strings"
	"time"
)

// DateLayout is the storage and input layout for calendar dates.
const DateLayout = "2006-01-02"

// TimeLayout is the layout of staff start and end times.
const TimeLayout = "15:04"

// ValidTimeOfDay reports whether s is a zero-padded 24-hour HH:MM time.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil && len(s) == len(TimeLayout)
}

// WorkOrder is a client contract instance: metadata, billing configuration
// and the security posts it staffs. Posts and their staff requirements are
// owned by the work order and have no lifecycle of their own.
type WorkOrder struct {
	// ID is the human-facing code, WO-<year>-<number>. Immutable once assigned.
	ID string
	// RecordID is the durable identifier assigned by persistence. Empty until
	// the first successful save.
	RecordID string

	Client       string
	Service      string
	QuotationRef string
	AgreementRef string
	StartDate    string
	EndDate      string
	Value        string
	// DisplayValue is the currency-prefixed amount recorded at submission.
	DisplayValue string
	Status       WorkOrderStatus

	Posts []SecurityPost

	BillingCycle  BillingCycle
	BillingRate   BillingRate
	InvoiceDueDay InvoiceDueDay
	GSTInclusive  bool

	CreateOperationalPosts bool

	DocumentURL    string
	ClientApproval string

	SyncStatus SyncStatus
	SyncError  string
	SyncedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Location struct {
	Address string
	Digipin string
}

type SecurityPost struct {
	Name          string
	Code          string
	Type          PostType
	Location      Location
	DutyType      DutyType
	RequiredStaff []StaffRequirement
}

type StaffRequirement struct {
	Role      StaffRole
	Count     int
	Shift     Shift
	StartTime string
	EndTime   string
	Days      []Weekday
}

// Sequence returns the numeric segment of the work order code, e.g. "0007"
// for "WO-2025-0007". Returns "" when the code has no dash-separated suffix.
func (w *WorkOrder) Sequence() string {
	i := strings.LastIndex(w.ID, "-")
	if i < 0 || i == len(w.ID)-1 {
		return ""
	}
	return w.ID[i+1:]
}

// TotalHeadcount sums staff counts across every post.
func (w *WorkOrder) TotalHeadcount() int {
	total := 0
	for i := range w.Posts {
		total += w.Posts[i].Headcount()
	}
	return total
}

// Headcount sums the staff counts of the post's requirements.
func (p *SecurityPost) Headcount() int {
	total := 0
	for _, s := range p.RequiredStaff {
		total += s.Count
	}
	return total
}

// HasDay reports whether day is in the requirement's schedule.
func (s *StaffRequirement) HasDay(day Weekday) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Posts, staff and day slices are not shared.
func (w *WorkOrder) Clone() *WorkOrder {
	if w == nil {
		return nil
	}
	out := *w
	if w.SyncedAt != nil {
		at := *w.SyncedAt
		out.SyncedAt = &at
	}
	if w.Posts != nil {
		out.Posts = make([]SecurityPost, len(w.Posts))
		for i := range w.Posts {
			out.Posts[i] = w.Posts[i].Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the post.
func (p SecurityPost) Clone() SecurityPost {
	out := p
	if p.RequiredStaff != nil {
		out.RequiredStaff = make([]StaffRequirement, len(p.RequiredStaff))
		for i := range p.RequiredStaff {
			out.RequiredStaff[i] = p.RequiredStaff[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the requirement.
func (s StaffRequirement) Clone() StaffRequirement {
	out := s
	if s.Days != nil {
		out.Days = append([]Weekday(nil), s.Days...)
	}
	return out
}
