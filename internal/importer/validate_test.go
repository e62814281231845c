package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		WorkOrders: []WorkOrderImport{
			{
				Client:    "Acme",
				Service:   "Guarding",
				StartDate: "2025-01-01",
				Posts: []PostImport{
					{Name: "Gate A", Address: "123 Main St"},
				},
			},
		},
	}
}

func errorStrings(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	gst := true
	schema := &ImportSchema{
		WorkOrders: []WorkOrderImport{
			{
				Code:          "WO-2025-0042",
				Client:        "Acme",
				Service:       "Manned guarding",
				StartDate:     "2025-01-01",
				EndDate:       "2025-12-31",
				Value:         "250000.50",
				Status:        "Approved",
				BillingCycle:  "quarterly",
				BillingRate:   "headcount",
				InvoiceDueDay: "45",
				GSTInclusive:  &gst,
				Posts: []PostImport{
					{
						Name: "Gate A", Type: "temporary", Address: "123 Main St", Digipin: "5c88j97ft7", DutyType: "12H",
						Staff: []StaffImport{
							{Role: "Armed Guard", Count: "2", Shift: "Night", StartTime: "18:00", EndTime: "06:00", Days: []string{"mon", "TUE"}},
						},
					},
				},
			},
		},
	}

	errs := ValidateImportSchema(schema)
	assert.Empty(t, errs, errorStrings(errs))
}

func TestValidateImportSchema_NoWorkOrders(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "work_orders")
}

func TestValidateImportSchema_MissingRequiredFields(t *testing.T) {
	schema := &ImportSchema{
		WorkOrders: []WorkOrderImport{
			{Posts: []PostImport{{}}},
		},
	}

	errs := ValidateImportSchema(schema)
	all := errorStrings(errs)

	assert.Len(t, errs, 5)
	assert.Contains(t, all, "work_orders[0].client is required")
	assert.Contains(t, all, "work_orders[0].service is required")
	assert.Contains(t, all, "work_orders[0].start_date is required")
	assert.Contains(t, all, "work_orders[0].posts[0].name is required")
	assert.Contains(t, all, "work_orders[0].posts[0].address is required")
}

func TestValidateImportSchema_NoPosts(t *testing.T) {
	schema := validMinimalSchema()
	schema.WorkOrders[0].Posts = nil

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one post")
}

func TestValidateImportSchema_InvalidEnums(t *testing.T) {
	schema := validMinimalSchema()
	wo := &schema.WorkOrders[0]
	wo.Status = "Closed"
	wo.BillingCycle = "weekly"
	wo.BillingRate = "per-visit"
	wo.InvoiceDueDay = "20"
	wo.Posts[0].Type = "seasonal"
	wo.Posts[0].DutyType = "24H"
	wo.Posts[0].Staff = []StaffImport{{Role: "Chief", Shift: "Dawn"}}

	errs := ValidateImportSchema(schema)
	all := errorStrings(errs)

	assert.Len(t, errs, 8)
	for _, field := range []string{
		".status", ".billing_cycle", ".billing_rate", ".invoice_due_day",
		"posts[0].type", "posts[0].duty_type", "staff[0].role", "staff[0].shift",
	} {
		assert.Contains(t, all, field)
	}
}

func TestValidateImportSchema_InvalidDatesAndTimes(t *testing.T) {
	schema := validMinimalSchema()
	wo := &schema.WorkOrders[0]
	wo.StartDate = "01/01/2025"
	wo.EndDate = "2025-13-01"
	wo.Posts[0].Staff = []StaffImport{{Role: "PSO", Shift: "Day", StartTime: "6am", EndTime: "24:00"}}

	errs := ValidateImportSchema(schema)
	all := errorStrings(errs)

	assert.Len(t, errs, 4)
	assert.Contains(t, all, "start_date: invalid date format")
	assert.Contains(t, all, "end_date: invalid date format")
	assert.Contains(t, all, "start_time: invalid time")
	assert.Contains(t, all, "end_time: invalid time")
}

func TestValidateImportSchema_InvalidValue(t *testing.T) {
	schema := validMinimalSchema()
	schema.WorkOrders[0].Value = "lots"
	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "is not a number")

	schema.WorkOrders[0].Value = "-5"
	errs = ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "must not be negative")
}

func TestValidateImportSchema_Days(t *testing.T) {
	schema := validMinimalSchema()
	schema.WorkOrders[0].Posts[0].Staff = []StaffImport{
		{Role: "PSO", Shift: "Day", Days: []string{"mon", "funday", "MON"}},
	}

	errs := ValidateImportSchema(schema)
	all := errorStrings(errs)

	assert.Len(t, errs, 2)
	assert.Contains(t, all, `days[1]: invalid day "funday"`)
	assert.Contains(t, all, `days[2]: duplicate day "MON"`)
}

func TestValidateImportSchema_Codes(t *testing.T) {
	schema := validMinimalSchema()
	second := schema.WorkOrders[0]
	schema.WorkOrders[0].Code = "WO-2025-0001"
	second.Code = "wo-2025-0001"
	third := schema.WorkOrders[0]
	third.Code = "2025-1"
	schema.WorkOrders = append(schema.WorkOrders, second, third)

	errs := ValidateImportSchema(schema)
	all := errorStrings(errs)

	assert.Len(t, errs, 2)
	assert.Contains(t, all, "work_orders[1].code: duplicate code")
	assert.Contains(t, all, "work_orders[2].code: invalid format")
}

func TestValidateImportSchema_CollectsAcrossOrders(t *testing.T) {
	schema := validMinimalSchema()
	broken := schema.WorkOrders[0]
	broken.Client = ""
	schema.WorkOrders = append(schema.WorkOrders, broken)

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "work_orders[1].client")
}
