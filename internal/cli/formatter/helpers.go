package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/safend/workorders/internal/domain"
)

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp renders t relative to the current time.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom renders t relative to now: "Just now", "5m ago",
// "3h ago", or an absolute date beyond a day.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case t.IsZero():
		return "--"
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FormatDays summarises a schedule: "daily", "weekdays", "weekends",
// "none", or the tokens in calendar order.
func FormatDays(days []domain.Weekday) string {
	set := make(map[domain.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}

	var ordered []string
	for _, d := range domain.AllWeekdays {
		if set[d] {
			ordered = append(ordered, string(d))
		}
	}

	switch strings.Join(ordered, ",") {
	case "":
		return "none"
	case "mon,tue,wed,thu,fri,sat,sun":
		return "daily"
	case "mon,tue,wed,thu,fri":
		return "weekdays"
	case "sat,sun":
		return "weekends"
	}
	return strings.Join(ordered, ",")
}

// Plural renders "1 post", "3 posts".
func Plural(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}
