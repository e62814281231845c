package workorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/safend/workorders/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is prefixed to the display value when none is configured.
const DefaultCurrency = "₹"

// FieldError is one missing or malformed field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors lists every field problem found in a single pass.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msg := fmt.Sprintf("work order validation failed (%d errors):", len(v))
	for _, e := range v {
		msg += "\n  - " + e.Error()
	}
	return msg
}

// Fields returns the offending field paths in order.
func (v ValidationErrors) Fields() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Field
	}
	return out
}

// SubmitOptions controls normalization.
type SubmitOptions struct {
	Currency string
	Now      time.Time
}

// Submission is a work order ready for persistence. Order.DisplayValue
// carries the currency-prefixed amount, e.g. "₹5000.00".
type Submission struct {
	Order *domain.WorkOrder
	// Warnings are problems that do not block submission.
	Warnings []string
}

// ValidateForSubmit checks required fields, enumerated values and times and,
// when they all pass, returns a normalized copy of w with timestamps set. On
// failure the error is a ValidationErrors and w is untouched.
func ValidateForSubmit(w *domain.WorkOrder, opts SubmitOptions) (*Submission, error) {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if blank(w.Client) {
		add("client", "is required")
	}
	if blank(w.Service) {
		add("service", "is required")
	}
	if blank(w.StartDate) {
		add("startDate", "is required")
	} else if _, err := time.Parse(domain.DateLayout, w.StartDate); err != nil {
		add("startDate", fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", w.StartDate))
	}
	if !blank(w.EndDate) {
		if _, err := time.Parse(domain.DateLayout, w.EndDate); err != nil {
			add("endDate", fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", w.EndDate))
		}
	}

	amount := decimal.Zero
	if !blank(w.Value) {
		d, err := decimal.NewFromString(strings.TrimSpace(w.Value))
		switch {
		case err != nil:
			add("value", fmt.Sprintf("%q is not a number", w.Value))
		case d.IsNegative():
			add("value", "must not be negative")
		default:
			amount = d
		}
	}

	checkEnum(add, "status", w.Status, domain.ValidWorkOrderStatuses)
	checkEnum(add, "billingCycle", w.BillingCycle, domain.ValidBillingCycles)
	checkEnum(add, "billingRate", w.BillingRate, domain.ValidBillingRates)
	checkEnum(add, "invoiceDueDay", w.InvoiceDueDay, domain.ValidInvoiceDueDays)

	if len(w.Posts) == 0 {
		add("posts", "at least one post is required")
	}
	for i, p := range w.Posts {
		prefix := fmt.Sprintf("posts[%d]", i)
		if blank(p.Name) {
			add(prefix+".name", "is required")
		}
		if blank(p.Location.Address) {
			add(prefix+".location.address", "is required")
		}
		checkEnum(add, prefix+".type", p.Type, domain.ValidPostTypes)
		checkEnum(add, prefix+".dutyType", p.DutyType, domain.ValidDutyTypes)

		for j, s := range p.RequiredStaff {
			sp := fmt.Sprintf("%s.requiredStaff[%d]", prefix, j)
			checkEnum(add, sp+".role", s.Role, domain.ValidStaffRoles)
			// A known shift outside the duty type's set is only a warning.
			checkEnum(add, sp+".shift", s.Shift, domain.ValidShifts)
			checkTime(add, sp+".startTime", s.StartTime)
			checkTime(add, sp+".endTime", s.EndTime)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	out := w.Clone()
	out.Client = strings.TrimSpace(out.Client)
	out.Service = strings.TrimSpace(out.Service)
	out.Value = strings.TrimSpace(out.Value)
	for i := range out.Posts {
		out.Posts[i].Location.Digipin = domain.NormalizeDigipin(out.Posts[i].Location.Digipin)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now

	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	out.DisplayValue = currency + amount.StringFixed(2)

	return &Submission{
		Order:    out,
		Warnings: submitWarnings(out),
	}, nil
}

func submitWarnings(w *domain.WorkOrder) []string {
	var warnings []string

	if !blank(w.EndDate) {
		start, startErr := time.Parse(domain.DateLayout, w.StartDate)
		end, endErr := time.Parse(domain.DateLayout, w.EndDate)
		if startErr == nil && endErr == nil && end.Before(start) {
			warnings = append(warnings, fmt.Sprintf("endDate %s is before startDate %s", w.EndDate, w.StartDate))
		}
	}

	for i, p := range w.Posts {
		for j, s := range p.RequiredStaff {
			if !domain.ShiftAllowed(p.DutyType, s.Shift) {
				warnings = append(warnings, fmt.Sprintf("posts[%d].requiredStaff[%d].shift %q is not allowed for %s duty", i, j, s.Shift, p.DutyType))
			}
			if len(s.Days) == 0 {
				warnings = append(warnings, fmt.Sprintf("posts[%d].requiredStaff[%d] has no days selected", i, j))
			}
		}
	}
	return warnings
}

func checkEnum[T ~string](add func(field, msg string), field string, value T, valid map[T]bool) {
	if !valid[value] {
		add(field, fmt.Sprintf("invalid value %q", value))
	}
}

// checkTime accepts a blank time, which leaves the shift's hours unset.
func checkTime(add func(field, msg string), field, value string) {
	if value != "" && !domain.ValidTimeOfDay(value) {
		add(field, fmt.Sprintf("invalid time %q (expected HH:MM)", value))
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
