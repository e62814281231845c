package workorder

import (
	"testing"
	"time"

	"github.com/safend/workorders/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) *domain.WorkOrder {
	t.Helper()
	return Apply(newOrder(t),
		SetClient{Value: "Acme"},
		SetService{Value: "Guarding"},
		SetStartDate{Value: "2025-01-01"},
		SetPostName{Post: 0, Value: "Gate A"},
		SetPostAddress{Post: 0, Value: "123 Main St"},
	)
}

var fixedNow = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

func TestValidateForSubmit_HappyPath(t *testing.T) {
	sub, err := ValidateForSubmit(validOrder(t), SubmitOptions{Now: fixedNow})

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "₹0.00", sub.Order.DisplayValue)
	assert.Equal(t, fixedNow, sub.Order.CreatedAt)
	assert.Equal(t, fixedNow, sub.Order.UpdatedAt)
	assert.Empty(t, sub.Warnings)
}

func TestValidateForSubmit_MissingClient(t *testing.T) {
	w := Apply(validOrder(t), SetClient{Value: ""})

	sub, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})

	assert.Nil(t, sub)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "client", verrs[0].Field)
}

func TestValidateForSubmit_CollectsEveryError(t *testing.T) {
	w := AddPost(newOrder(t))

	_, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{
		"client", "service", "startDate",
		"posts[0].name", "posts[0].location.address",
		"posts[1].name", "posts[1].location.address",
	}, verrs.Fields())
	assert.Contains(t, err.Error(), "7 errors")
}

func TestValidateForSubmit_WhitespaceCountsAsEmpty(t *testing.T) {
	w := Apply(validOrder(t), SetService{Value: "   "})

	_, err := ValidateForSubmit(w, SubmitOptions{})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"service"}, verrs.Fields())
}

func TestValidateForSubmit_InvalidStartDate(t *testing.T) {
	w := Apply(validOrder(t), SetStartDate{Value: "01/01/2025"})

	_, err := ValidateForSubmit(w, SubmitOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "startDate")
}

func TestValidateForSubmit_ValueFormatting(t *testing.T) {
	w := Apply(validOrder(t), SetValue{Value: "125000.5"})

	sub, err := ValidateForSubmit(w, SubmitOptions{Currency: "$", Now: fixedNow})

	require.NoError(t, err)
	assert.Equal(t, "$125000.50", sub.Order.DisplayValue)
	assert.Equal(t, "125000.5", sub.Order.Value)
	assert.Equal(t, "125000.5", w.Value, "input must be untouched")
}

func TestValidateForSubmit_NonNumericValue(t *testing.T) {
	w := Apply(validOrder(t), SetValue{Value: "lots"})

	_, err := ValidateForSubmit(w, SubmitOptions{})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"value"}, verrs.Fields())
}

func TestValidateForSubmit_PreservesCreatedAt(t *testing.T) {
	w := validOrder(t)
	created := fixedNow.Add(-48 * time.Hour)
	w.CreatedAt = created

	sub, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})

	require.NoError(t, err)
	assert.Equal(t, created, sub.Order.CreatedAt)
	assert.Equal(t, fixedNow, sub.Order.UpdatedAt)
}

func TestValidateForSubmit_WarnsWithoutFailing(t *testing.T) {
	w := Apply(validOrder(t),
		SetEndDate{Value: "2024-12-01"},
		SetStaffShift{Post: 0, Staff: 0, Value: domain.ShiftEvening},
		SetPostDutyType{Post: 0, Value: domain.Duty12H},
	)
	w = clearDays(w)

	sub, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})

	require.NoError(t, err)
	require.Len(t, sub.Warnings, 3)
	assert.Contains(t, sub.Warnings[0], "before startDate")
	assert.Contains(t, sub.Warnings[1], "not allowed for 12H")
	assert.Contains(t, sub.Warnings[2], "no days")
}

func TestValidateForSubmit_RejectsUnknownEnumValues(t *testing.T) {
	w := Apply(validOrder(t),
		SetStatus{Value: "Bogus"},
		SetBillingCycle{Value: "weekly"},
		SetBillingRate{Value: "barter"},
		SetInvoiceDue{Value: "90"},
		SetPostType{Post: 0, Value: "x"},
		SetPostDutyType{Post: 0, Value: "24H"},
	)
	w = UpdateStaffField(w, 0, 0, StaffRole, "Dog Handler")
	w = UpdateStaffField(w, 0, 0, StaffShift, "Lunch")

	sub, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})

	assert.Nil(t, sub)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{
		"status", "billingCycle", "billingRate", "invoiceDueDay",
		"posts[0].type", "posts[0].dutyType",
		"posts[0].requiredStaff[0].role", "posts[0].requiredStaff[0].shift",
	}, verrs.Fields())
	assert.Contains(t, err.Error(), `status: invalid value "Bogus"`)
}

func TestValidateForSubmit_RejectsMalformedTimes(t *testing.T) {
	w := UpdateStaffField(validOrder(t), 0, 0, StaffStartTime, "99:99")
	w = UpdateStaffField(w, 0, 0, StaffEndTime, "6pm")

	_, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{
		"posts[0].requiredStaff[0].startTime", "posts[0].requiredStaff[0].endTime",
	}, verrs.Fields())

	blankTimes := UpdateStaffField(validOrder(t), 0, 0, StaffStartTime, "")
	_, err = ValidateForSubmit(blankTimes, SubmitOptions{Now: fixedNow})
	assert.NoError(t, err)
}

func TestValidateForSubmit_StoresValueAsEntered(t *testing.T) {
	w := Apply(validOrder(t), SetValue{Value: " 5000.50 "})

	sub, err := ValidateForSubmit(w, SubmitOptions{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, "5000.50", sub.Order.Value)
	assert.Equal(t, "₹5000.50", sub.Order.DisplayValue)

	sub, err = ValidateForSubmit(validOrder(t), SubmitOptions{Now: fixedNow})
	require.NoError(t, err)
	assert.Empty(t, sub.Order.Value)
	assert.Equal(t, "₹0.00", sub.Order.DisplayValue)
}
