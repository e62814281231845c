package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/safend/workorders/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"zero", time.Time{}, "--"},
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-72 * time.Hour), "Feb 4, 2026"},
		{"future", now.Add(48 * time.Hour), "Feb 9, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		name string
		days []domain.Weekday
		want string
	}{
		{"empty", nil, "none"},
		{"all", domain.AllWeekdays, "daily"},
		{"weekdays", []domain.Weekday{domain.Fri, domain.Mon, domain.Tue, domain.Wed, domain.Thu}, "weekdays"},
		{"weekends", []domain.Weekday{domain.Sun, domain.Sat}, "weekends"},
		{"custom is calendar ordered", []domain.Weekday{domain.Fri, domain.Mon}, "mon,fri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDays(tt.days))
		})
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 post", Plural(1, "post"))
	assert.Equal(t, "0 posts", Plural(0, "post"))
	assert.Equal(t, "3 posts", Plural(3, "post"))
}

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("12345678-aaaa-bbbb"), "12345678")
	assert.NotContains(t, TruncID("12345678-aaaa-bbbb"), "aaaa")
	assert.Contains(t, TruncID("abc"), "abc")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{{"wide cell", "x"}, {"y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "LONGER"), strings.Index(lines[2], "x"))
	assert.Contains(t, lines[1], "─────────")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, [][]string{{"a"}}))
}
