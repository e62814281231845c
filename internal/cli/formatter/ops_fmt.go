package formatter

import (
	"strconv"
	"strings"

	"github.com/safend/workorders/internal/domain"
)

// FormatOperationalPosts renders the operations-side post register.
func FormatOperationalPosts(posts []domain.OperationalPost) string {
	headers := []string{"POST", "WORK ORDER", "NAME", "CLIENT", "DUTY", "HEADCOUNT", "SHIFTS", "DIGIPIN", "FROM"}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		shifts := make([]string, len(p.Shifts))
		for i, s := range p.Shifts {
			shifts[i] = string(s)
		}
		rows = append(rows, []string{
			StylePurple.Render(p.PostCode),
			p.WorkOrderCode,
			p.Name,
			p.Client,
			string(p.DutyType),
			strconv.Itoa(p.Headcount),
			orDash(strings.Join(shifts, ", ")),
			orDash(p.Digipin),
			p.StartDate,
		})
	}
	return RenderTable(headers, rows)
}
