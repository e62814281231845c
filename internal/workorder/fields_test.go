package workorder

import (
	"testing"

	"github.com/safend/workorders/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUpdatePostField_DirectFields(t *testing.T) {
	w := newOrder(t)

	w = UpdatePostField(w, 0, PostName, "Gate A")
	w = UpdatePostField(w, 0, PostType, "temporary")
	w = UpdatePostField(w, 0, PostDutyType, "12H")

	p := w.Posts[0]
	assert.Equal(t, "Gate A", p.Name)
	assert.Equal(t, domain.PostTemporary, p.Type)
	assert.Equal(t, domain.Duty12H, p.DutyType)
}

func TestUpdatePostField_LocationPaths(t *testing.T) {
	w := newOrder(t)

	w = UpdatePostField(w, 0, PostAddress, "123 Main St")
	w = UpdatePostField(w, 0, PostDigipin, "5c88j97ft7")

	assert.Equal(t, "123 Main St", w.Posts[0].Location.Address)
	assert.Equal(t, "5C8-8J9-7FT7", w.Posts[0].Location.Digipin)
}

func TestUpdatePostField_UnknownPathIsNoop(t *testing.T) {
	w := newOrder(t)
	w2 := UpdatePostField(w, 0, PostField("location.city"), "Pune")
	assert.Equal(t, w, w2)
}

func TestUpdateStaffField_CountCoercion(t *testing.T) {
	w := newOrder(t)

	assert.Equal(t, 1, UpdateStaffField(w, 0, 0, StaffCount, "abc").Posts[0].RequiredStaff[0].Count)
	assert.Equal(t, 5, UpdateStaffField(w, 0, 0, StaffCount, "5").Posts[0].RequiredStaff[0].Count)
	assert.Equal(t, 1, UpdateStaffField(w, 0, 0, StaffCount, "").Posts[0].RequiredStaff[0].Count)
	assert.Equal(t, 1, UpdateStaffField(w, 0, 0, StaffCount, "0").Posts[0].RequiredStaff[0].Count)
	assert.Equal(t, 1, UpdateStaffField(w, 0, 0, StaffCount, "-3").Posts[0].RequiredStaff[0].Count)
	assert.Equal(t, 12, UpdateStaffField(w, 0, 0, StaffCount, "12 guards").Posts[0].RequiredStaff[0].Count)
}

func TestUpdateStaffField_VerbatimFields(t *testing.T) {
	w := newOrder(t)

	w = UpdateStaffField(w, 0, 0, StaffRole, "Armed Guard")
	w = UpdateStaffField(w, 0, 0, StaffShift, "Evening")
	w = UpdateStaffField(w, 0, 0, StaffStartTime, "14:00")
	w = UpdateStaffField(w, 0, 0, StaffEndTime, "22:00")

	s := w.Posts[0].RequiredStaff[0]
	assert.Equal(t, domain.RoleArmedGuard, s.Role)
	assert.Equal(t, domain.ShiftEvening, s.Shift)
	assert.Equal(t, "14:00", s.StartTime)
	assert.Equal(t, "22:00", s.EndTime)
}

func TestUpdatePostField_DutyTypeChangeKeepsInvalidShift(t *testing.T) {
	// Known gap: moving to 12H does not correct shifts it disallows.
	w := newOrder(t)
	w = UpdateStaffField(w, 0, 0, StaffShift, "Evening")

	w = UpdatePostField(w, 0, PostDutyType, "12H")

	assert.Equal(t, domain.ShiftEvening, w.Posts[0].RequiredStaff[0].Shift)
	assert.False(t, domain.ShiftAllowed(w.Posts[0].DutyType, w.Posts[0].RequiredStaff[0].Shift))
}

func TestUpdateStaffField_OutOfRangeIsNoop(t *testing.T) {
	w := newOrder(t)
	assert.Equal(t, w, UpdateStaffField(w, 0, 3, StaffCount, "9"))
	assert.Equal(t, w, UpdateStaffField(w, 2, 0, StaffCount, "9"))
}

func TestApply_BatchesCommandsWithoutMutatingInput(t *testing.T) {
	w := newOrder(t)

	out := Apply(w,
		SetClient{Value: "Acme"},
		SetService{Value: "Guarding"},
		NewPost{},
		SetPostName{Post: 1, Value: "Gate B"},
		NewStaff{Post: 1},
		SetStaffCount{Post: 1, Staff: 1, Raw: "3"},
		SetStaffDay{Post: 1, Staff: 1, Day: domain.Sun, Selected: false},
	)

	assert.Equal(t, "Acme", out.Client)
	assert.Equal(t, "Gate B", out.Posts[1].Name)
	assert.Equal(t, 3, out.Posts[1].RequiredStaff[1].Count)
	assert.False(t, out.Posts[1].RequiredStaff[1].HasDay(domain.Sun))

	assert.Equal(t, "", w.Client)
	assert.Len(t, w.Posts, 1)
}

func TestApply_NilOrder(t *testing.T) {
	assert.Nil(t, Apply(nil, SetClient{Value: "x"}))
}
