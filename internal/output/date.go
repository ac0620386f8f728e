package output

import (
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
)

const (
	dateTemplate = "YYYY-mm-dd"
	dayTemplate  = "mm-dd"
)

// FormatDate formats a time as a standalone date: "2025-01-20".
func FormatDate(t time.Time) string {
	return calendar.Format(t, dateTemplate)
}

// FormatDateTime formats a time with template, falling back to
// "YYYY-mm-dd HH:MM:SS" when template is empty.
func FormatDateTime(t time.Time, template string) string {
	if template == "" {
		template = calendar.DefaultTemplate
	}
	return calendar.Format(t, template)
}

// FormatDateRange formats the days of a range with an arrow separator.
// Single-day ranges print one date: "2025-01-20".
// Same-year ranges abbreviate the end: "2025-01-20 → 01-31".
// Cross-year ranges: "2024-12-30 → 2025-01-05".
func FormatDateRange(start, end time.Time) string {
	end = end.In(start.Location())
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return FormatDate(start)
	}
	if start.Year() == end.Year() {
		return FormatDate(start) + " → " + calendar.Format(end, dayTemplate)
	}
	return FormatDate(start) + " → " + FormatDate(end)
}

// FormatRange formats both bounds of r with template.
func FormatRange(r calendar.Range, template string) string {
	return FormatDateTime(r.Start, template) + " → " + FormatDateTime(r.End, template)
}
