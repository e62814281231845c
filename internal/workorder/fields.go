package workorder

import "github.com/safend/workorders/internal/domain"

// PostField names an editable post field. Location fields use dotted paths.
type PostField string

const (
	PostName     PostField = "name"
	PostType     PostField = "type"
	PostDutyType PostField = "dutyType"
	PostAddress  PostField = "location.address"
	PostDigipin  PostField = "location.digipin"
)

// StaffField names an editable staff requirement field.
type StaffField string

const (
	StaffRole      StaffField = "role"
	StaffCount     StaffField = "count"
	StaffShift     StaffField = "shift"
	StaffStartTime StaffField = "startTime"
	StaffEndTime   StaffField = "endTime"
)

// PostFieldCommand maps a field path to its command. ok is false for
// unknown paths.
func PostFieldCommand(index int, field PostField, value string) (cmd Command, ok bool) {
	switch field {
	case PostName:
		return SetPostName{Post: index, Value: value}, true
	case PostType:
		return SetPostType{Post: index, Value: domain.PostType(value)}, true
	case PostDutyType:
		return SetPostDutyType{Post: index, Value: domain.DutyType(value)}, true
	case PostAddress:
		return SetPostAddress{Post: index, Value: value}, true
	case PostDigipin:
		return SetPostDigipin{Post: index, Value: value}, true
	}
	return nil, false
}

// StaffFieldCommand maps a staff field name to its command.
func StaffFieldCommand(postIndex, staffIndex int, field StaffField, value string) (cmd Command, ok bool) {
	switch field {
	case StaffRole:
		return SetStaffRole{Post: postIndex, Staff: staffIndex, Value: domain.StaffRole(value)}, true
	case StaffCount:
		return SetStaffCount{Post: postIndex, Staff: staffIndex, Raw: value}, true
	case StaffShift:
		return SetStaffShift{Post: postIndex, Staff: staffIndex, Value: domain.Shift(value)}, true
	case StaffStartTime:
		return SetStaffStartTime{Post: postIndex, Staff: staffIndex, Value: value}, true
	case StaffEndTime:
		return SetStaffEndTime{Post: postIndex, Staff: staffIndex, Value: value}, true
	}
	return nil, false
}

// UpdatePostField sets a post field by path. Digipins are normalized before
// they are stored. Unknown paths leave the order unchanged.
func UpdatePostField(w *domain.WorkOrder, index int, field PostField, value string) *domain.WorkOrder {
	cmd, _ := PostFieldCommand(index, field, value)
	return Apply(w, cmd)
}

// UpdateStaffField sets a staff requirement field. Count is coerced to a
// positive integer; the rest are stored verbatim.
func UpdateStaffField(w *domain.WorkOrder, postIndex, staffIndex int, field StaffField, value string) *domain.WorkOrder {
	cmd, _ := StaffFieldCommand(postIndex, staffIndex, field, value)
	return Apply(w, cmd)
}
