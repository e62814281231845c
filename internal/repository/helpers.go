package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/safend/workorders/internal/domain"
)

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timestampLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTime converts a *time.Time to a value suitable for SQLite storage.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timestampLayout)
}

// nullableString stores "" as SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// joinDays stores a day set as "mon,tue". The empty set is "".
func joinDays(days []domain.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(s string) []domain.Weekday {
	if s == "" {
		return []domain.Weekday{}
	}
	parts := strings.Split(s, ",")
	days := make([]domain.Weekday, len(parts))
	for i, p := range parts {
		days[i] = domain.Weekday(p)
	}
	return days
}

func joinShifts(shifts []domain.Shift) string {
	parts := make([]string, len(shifts))
	for i, s := range shifts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func splitShifts(s string) []domain.Shift {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	shifts := make([]domain.Shift, len(parts))
	for i, p := range parts {
		shifts[i] = domain.Shift(p)
	}
	return shifts
}
