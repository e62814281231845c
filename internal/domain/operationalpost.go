package domain

import "time"

// OperationalPost is the operations-side projection of one SecurityPost of a
// saved work order. It is keyed by (WorkOrderRecordID, PostCode).
type OperationalPost struct {
	ID                string
	WorkOrderRecordID string
	WorkOrderCode     string
	PostCode          string
	Name              string
	Client            string
	Address           string
	Digipin           string
	Type              PostType
	DutyType          DutyType
	Headcount         int
	Shifts            []Shift
	StartDate         string
	EndDate           string
	Status            OperationalPostStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProjectOperationalPosts derives one operational post per security post.
// Shifts are distinct, in first-seen order. IDs are left empty for the
// store to assign or keep.
func ProjectOperationalPosts(w *WorkOrder, now time.Time) []OperationalPost {
	out := make([]OperationalPost, 0, len(w.Posts))
	for i := range w.Posts {
		p := &w.Posts[i]

		seen := make(map[Shift]bool)
		var shifts []Shift
		for _, s := range p.RequiredStaff {
			if s.Shift == "" || seen[s.Shift] {
				continue
			}
			seen[s.Shift] = true
			shifts = append(shifts, s.Shift)
		}

		out = append(out, OperationalPost{
			WorkOrderRecordID: w.RecordID,
			WorkOrderCode:     w.ID,
			PostCode:          p.Code,
			Name:              p.Name,
			Client:            w.Client,
			Address:           p.Location.Address,
			Digipin:           p.Location.Digipin,
			Type:              p.Type,
			DutyType:          p.DutyType,
			Headcount:         p.Headcount(),
			Shifts:            shifts,
			StartDate:         w.StartDate,
			EndDate:           w.EndDate,
			Status:            OperationalActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return out
}
