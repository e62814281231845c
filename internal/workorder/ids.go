package workorder

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/safend/workorders/internal/domain"
)

// IDGenerator supplies the code for a new work order.
type IDGenerator interface {
	WorkOrderID() string
}

// FormatWorkOrderID renders WO-<year>-<seq zero-padded to 4>.
func FormatWorkOrderID(year, seq int) string {
	return fmt.Sprintf("WO-%d-%04d", year, seq)
}

// RandomIDGenerator produces WO-<year>-<random 0000..9999>. Codes are not
// checked for collisions; persistence rejects duplicates.
type RandomIDGenerator struct {
	Now  func() time.Time
	Rand *rand.Rand
}

func (g RandomIDGenerator) WorkOrderID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	var n int
	if g.Rand != nil {
		n = g.Rand.IntN(10000)
	} else {
		n = rand.IntN(10000)
	}
	return FormatWorkOrderID(now().Year(), n)
}

// FixedID hands out a predetermined code, typically one allocated from the
// persisted yearly sequence.
type FixedID string

func (f FixedID) WorkOrderID() string { return string(f) }

// PostCode derives P-<work order number>-<index+1 zero-padded to 2>.
func PostCode(w *domain.WorkOrder, index int) string {
	return fmt.Sprintf("P-%s-%02d", w.Sequence(), index+1)
}

// nextPostCode starts from the post count and skips codes already taken, so
// codes stay unique after a post has been removed.
func nextPostCode(w *domain.WorkOrder) string {
	taken := make(map[string]bool, len(w.Posts))
	for _, p := range w.Posts {
		taken[p.Code] = true
	}
	for i := len(w.Posts); ; i++ {
		if code := PostCode(w, i); !taken[code] {
			return code
		}
	}
}
