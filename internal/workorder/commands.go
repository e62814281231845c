package workorder

import (
	"strconv"
	"strings"

	"github.com/safend/workorders/internal/domain"
)

// Command is one edit to a work order. The set of commands is closed: only
// types in this package implement it.
type Command interface {
	apply(w *domain.WorkOrder)
}

// Apply returns a copy of w with cmds applied in order. w is not modified.
func Apply(w *domain.WorkOrder, cmds ...Command) *domain.WorkOrder {
	out := w.Clone()
	if out == nil {
		return nil
	}
	for _, c := range cmds {
		if c != nil {
			c.apply(out)
		}
	}
	return out
}

// Order-level commands.
type (
	SetClient       struct{ Value string }
	SetService      struct{ Value string }
	SetQuotationRef struct{ Value string }
	SetAgreementRef struct{ Value string }
	SetStartDate    struct{ Value string }
	SetEndDate      struct{ Value string }
	SetValue        struct{ Value string }
	SetStatus       struct{ Value domain.WorkOrderStatus }
	SetBillingCycle struct{ Value domain.BillingCycle }
	SetBillingRate  struct{ Value domain.BillingRate }
	SetInvoiceDue   struct{ Value domain.InvoiceDueDay }
	SetGSTInclusive struct{ Value bool }
	SetPostSync     struct{ Enabled bool }
)

func (c SetClient) apply(w *domain.WorkOrder)       { w.Client = c.Value }
func (c SetService) apply(w *domain.WorkOrder)      { w.Service = c.Value }
func (c SetQuotationRef) apply(w *domain.WorkOrder) { w.QuotationRef = c.Value }
func (c SetAgreementRef) apply(w *domain.WorkOrder) { w.AgreementRef = c.Value }
func (c SetStartDate) apply(w *domain.WorkOrder)    { w.StartDate = c.Value }
func (c SetEndDate) apply(w *domain.WorkOrder)      { w.EndDate = c.Value }
func (c SetValue) apply(w *domain.WorkOrder)        { w.Value = c.Value }
func (c SetStatus) apply(w *domain.WorkOrder)       { w.Status = c.Value }
func (c SetBillingCycle) apply(w *domain.WorkOrder) { w.BillingCycle = c.Value }
func (c SetBillingRate) apply(w *domain.WorkOrder)  { w.BillingRate = c.Value }
func (c SetInvoiceDue) apply(w *domain.WorkOrder)   { w.InvoiceDueDay = c.Value }
func (c SetGSTInclusive) apply(w *domain.WorkOrder) { w.GSTInclusive = c.Value }
func (c SetPostSync) apply(w *domain.WorkOrder)     { w.CreateOperationalPosts = c.Enabled }

// NewPost appends a default post.
type NewPost struct{}

func (NewPost) apply(w *domain.WorkOrder) {
	w.Posts = append(w.Posts, DefaultPost(nextPostCode(w)))
}

// DropPost removes a post. The last remaining post is never removed and the
// codes of the others are left as they are.
type DropPost struct{ Post int }

func (c DropPost) apply(w *domain.WorkOrder) {
	if len(w.Posts) <= 1 || post(w, c.Post) == nil {
		return
	}
	w.Posts = append(w.Posts[:c.Post], w.Posts[c.Post+1:]...)
}

// Post-level commands.
type (
	SetPostName struct {
		Post  int
		Value string
	}
	SetPostType struct {
		Post  int
		Value domain.PostType
	}
	SetPostAddress struct {
		Post  int
		Value string
	}
	SetPostDigipin struct {
		Post  int
		Value string
	}
	SetPostDutyType struct {
		Post  int
		Value domain.DutyType
	}
)

func (c SetPostName) apply(w *domain.WorkOrder) {
	if p := post(w, c.Post); p != nil {
		p.Name = c.Value
	}
}

func (c SetPostType) apply(w *domain.WorkOrder) {
	if p := post(w, c.Post); p != nil {
		p.Type = c.Value
	}
}

func (c SetPostAddress) apply(w *domain.WorkOrder) {
	if p := post(w, c.Post); p != nil {
		p.Location.Address = c.Value
	}
}

// SetPostDigipin stores the normalized form of Value.
func (c SetPostDigipin) apply(w *domain.WorkOrder) {
	if p := post(w, c.Post); p != nil {
		p.Location.Digipin = domain.NormalizeDigipin(c.Value)
	}
}

// SetPostDutyType changes the duty type only. Existing shifts that the new
// duty type does not allow are kept; ValidateForSubmit warns about them.
func (c SetPostDutyType) apply(w *domain.WorkOrder) {
	if p := post(w, c.Post); p != nil {
		p.DutyType = c.Value
	}
}

// NewStaff appends a night-shift requirement to a post.
type NewStaff struct{ Post int }

func (c NewStaff) apply(w *domain.WorkOrder) {
	if p := post(w, c.Post); p != nil {
		p.RequiredStaff = append(p.RequiredStaff, AdditionalStaff())
	}
}

// DropStaff removes a requirement, keeping at least one per post.
type DropStaff struct{ Post, Staff int }

func (c DropStaff) apply(w *domain.WorkOrder) {
	p := post(w, c.Post)
	if p == nil || len(p.RequiredStaff) <= 1 || staff(w, c.Post, c.Staff) == nil {
		return
	}
	p.RequiredStaff = append(p.RequiredStaff[:c.Staff], p.RequiredStaff[c.Staff+1:]...)
}

// Staff-level commands.
type (
	SetStaffRole struct {
		Post, Staff int
		Value       domain.StaffRole
	}
	SetStaffCount struct {
		Post, Staff int
		Raw         string
	}
	SetStaffShift struct {
		Post, Staff int
		Value       domain.Shift
	}
	SetStaffStartTime struct {
		Post, Staff int
		Value       string
	}
	SetStaffEndTime struct {
		Post, Staff int
		Value       string
	}
	SetStaffDay struct {
		Post, Staff int
		Day         domain.Weekday
		Selected    bool
	}
)

func (c SetStaffRole) apply(w *domain.WorkOrder) {
	if s := staff(w, c.Post, c.Staff); s != nil {
		s.Role = c.Value
	}
}

// SetStaffCount parses Raw; anything that is not a positive integer becomes 1.
func (c SetStaffCount) apply(w *domain.WorkOrder) {
	if s := staff(w, c.Post, c.Staff); s != nil {
		s.Count = CoerceCount(c.Raw)
	}
}

// SetStaffShift stores Value verbatim, even when the post's duty type does
// not allow it.
func (c SetStaffShift) apply(w *domain.WorkOrder) {
	if s := staff(w, c.Post, c.Staff); s != nil {
		s.Shift = c.Value
	}
}

func (c SetStaffStartTime) apply(w *domain.WorkOrder) {
	if s := staff(w, c.Post, c.Staff); s != nil {
		s.StartTime = c.Value
	}
}

func (c SetStaffEndTime) apply(w *domain.WorkOrder) {
	if s := staff(w, c.Post, c.Staff); s != nil {
		s.EndTime = c.Value
	}
}

func (c SetStaffDay) apply(w *domain.WorkOrder) {
	s := staff(w, c.Post, c.Staff)
	if s == nil {
		return
	}
	has := s.HasDay(c.Day)
	switch {
	case c.Selected && !has:
		s.Days = append(s.Days, c.Day)
	case !c.Selected && has:
		kept := s.Days[:0]
		for _, d := range s.Days {
			if d != c.Day {
				kept = append(kept, d)
			}
		}
		s.Days = kept
	}
}

// CoerceCount reads the leading digits of raw as a headcount. Empty input,
// no leading digits, or zero yield 1.
func CoerceCount(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func post(w *domain.WorkOrder, i int) *domain.SecurityPost {
	if i < 0 || i >= len(w.Posts) {
		return nil
	}
	return &w.Posts[i]
}

func staff(w *domain.WorkOrder, p, s int) *domain.StaffRequirement {
	sp := post(w, p)
	if sp == nil || s < 0 || s >= len(sp.RequiredStaff) {
		return nil
	}
	return &sp.RequiredStaff[s]
}
