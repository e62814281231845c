package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/safend/workorders/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	codeFormat = regexp.MustCompile(`^WO-[0-9]{4}-[0-9]{4,}$`)
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.WorkOrders) == 0 {
		return []error{fmt.Errorf("work_orders: at least one work order is required")}
	}

	codes := make(map[string]bool)
	for i := range schema.WorkOrders {
		prefix := fmt.Sprintf("work_orders[%d]", i)
		wo := &schema.WorkOrders[i]

		if wo.Code != "" {
			code := strings.ToUpper(wo.Code)
			switch {
			case !codeFormat.MatchString(code):
				errs = append(errs, fmt.Errorf("%s.code: invalid format %q (expected WO-YYYY-NNNN)", prefix, wo.Code))
			case codes[code]:
				errs = append(errs, fmt.Errorf("%s.code: duplicate code %q", prefix, wo.Code))
			default:
				codes[code] = true
			}
		}

		errs = append(errs, validateWorkOrder(prefix, wo)...)
	}

	return errs
}

func validateWorkOrder(prefix string, wo *WorkOrderImport) []error {
	var errs []error

	if strings.TrimSpace(wo.Client) == "" {
		errs = append(errs, fmt.Errorf("%s.client is required", prefix))
	}
	if strings.TrimSpace(wo.Service) == "" {
		errs = append(errs, fmt.Errorf("%s.service is required", prefix))
	}
	if wo.StartDate == "" {
		errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
	} else {
		errs = append(errs, validateDate(prefix+".start_date", wo.StartDate)...)
	}
	if wo.EndDate != "" {
		errs = append(errs, validateDate(prefix+".end_date", wo.EndDate)...)
	}

	if wo.Value != "" {
		if d, err := decimal.NewFromString(string(wo.Value)); err != nil {
			errs = append(errs, fmt.Errorf("%s.value: %q is not a number", prefix, wo.Value))
		} else if d.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.value must not be negative", prefix))
		}
	}

	errs = append(errs, validateEnum(prefix+".status", wo.Status, domain.ValidWorkOrderStatuses)...)
	errs = append(errs, validateEnum(prefix+".billing_cycle", wo.BillingCycle, domain.ValidBillingCycles)...)
	errs = append(errs, validateEnum(prefix+".billing_rate", wo.BillingRate, domain.ValidBillingRates)...)
	errs = append(errs, validateEnum(prefix+".invoice_due_day", string(wo.InvoiceDueDay), domain.ValidInvoiceDueDays)...)

	if len(wo.Posts) == 0 {
		errs = append(errs, fmt.Errorf("%s.posts: at least one post is required", prefix))
	}
	for i := range wo.Posts {
		errs = append(errs, validatePost(fmt.Sprintf("%s.posts[%d]", prefix, i), &wo.Posts[i])...)
	}

	return errs
}

func validatePost(prefix string, p *PostImport) []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if strings.TrimSpace(p.Address) == "" {
		errs = append(errs, fmt.Errorf("%s.address is required", prefix))
	}
	errs = append(errs, validateEnum(prefix+".type", p.Type, domain.ValidPostTypes)...)
	errs = append(errs, validateEnum(prefix+".duty_type", p.DutyType, domain.ValidDutyTypes)...)

	for i, s := range p.Staff {
		sp := fmt.Sprintf("%s.staff[%d]", prefix, i)

		if s.Role == "" {
			errs = append(errs, fmt.Errorf("%s.role is required", sp))
		} else {
			errs = append(errs, validateEnum(sp+".role", s.Role, domain.ValidStaffRoles)...)
		}
		if s.Shift == "" {
			errs = append(errs, fmt.Errorf("%s.shift is required", sp))
		} else {
			errs = append(errs, validateEnum(sp+".shift", s.Shift, domain.ValidShifts)...)
		}
		errs = append(errs, validateTime(sp+".start_time", s.StartTime)...)
		errs = append(errs, validateTime(sp+".end_time", s.EndTime)...)

		seen := make(map[string]bool)
		for j, d := range s.Days {
			day := strings.ToLower(d)
			if !domain.ValidWeekdays[domain.Weekday(day)] {
				errs = append(errs, fmt.Errorf("%s.days[%d]: invalid day %q", sp, j, d))
			} else if seen[day] {
				errs = append(errs, fmt.Errorf("%s.days[%d]: duplicate day %q", sp, j, d))
			}
			seen[day] = true
		}
	}

	return errs
}

// validateEnum accepts an empty value, which means "use the default".
func validateEnum[T ~string](field, value string, valid map[T]bool) []error {
	if value == "" || valid[T(value)] {
		return nil
	}
	return []error{fmt.Errorf("%s: invalid value %q", field, value)}
}

func validateDate(field, value string) []error {
	if _, err := time.Parse(domain.DateLayout, value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}

func validateTime(field, value string) []error {
	if value == "" || domain.ValidTimeOfDay(value) {
		return nil
	}
	return []error{fmt.Errorf("%s: invalid time %q (expected HH:MM)", field, value)}
}
