package calendar

import (
	"errors"
	"fmt"
	"time"
)

// lastNano is the nanosecond field of the last millisecond of a second.
const lastNano = int(999 * time.Millisecond)

// Range is an inclusive pair of instants. Ranges built from whole days end
// on the last millisecond of their final day (23:59:59.999).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days the range touches, counting both
// the start and end days. It returns 0 for an inverted range.
func (r Range) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return civilDays(r.Start, r.End.In(r.Start.Location())) + 1
}

// String renders both bounds with the default template.
func (r Range) String() string {
	return Format(r.Start, "") + " ~ " + Format(r.End, "")
}

// civilDays counts whole calendar days from a's date to b's date, ignoring
// time of day and DST shifts.
func civilDays(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / OneDay)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, lastNano, t.Location())
}

// Day returns now shifted by offset fixed-length days. Time of day is kept.
func (t *Tools) Day(offset int) time.Time {
	return t.DayFrom(t.Now(), offset)
}

// DayFrom returns ref shifted by offset fixed-length days.
func (t *Tools) DayFrom(ref time.Time, offset int) time.Time {
	return ref.Add(time.Duration(offset) * OneDay)
}

// LaterDay returns now minus offset fixed-length days. Positive offsets
// produce earlier instants; callers rely on that sign.
func (t *Tools) LaterDay(offset int) time.Time {
	return t.LaterDayFrom(t.Now(), offset)
}

// LaterDayFrom returns ref minus offset fixed-length days.
func (t *Tools) LaterDayFrom(ref time.Time, offset int) time.Time {
	return ref.Add(-time.Duration(offset) * OneDay)
}

// Week returns the Monday 00:00 to Sunday 23:59:59.999 range of the week
// offset weeks away from the current one. Weekdays count from Sunday as 0,
// so on a Sunday the current week is the one starting the next day.
func (t *Tools) Week(offset int) Range {
	now := t.Now()
	monday := startOfDay(now).AddDate(0, 0, 1-int(now.Weekday())+7*offset)
	return Range{
		Start: monday,
		End:   endOfDay(monday.AddDate(0, 0, 6)),
	}
}

// Month returns the calendar month offset months away from the current one.
func (t *Tools) Month(offset int) Range {
	return t.MonthFrom(t.Now(), offset)
}

// MonthFrom returns the calendar month offset months away from ref's month.
// The end is day 0 of the following month, which normalizes to the last day
// of the target month whatever its length.
func (t *Tools) MonthFrom(ref time.Time, offset int) Range {
	ref = ref.In(t.location())
	month := ref.Month() + time.Month(offset)
	return Range{
		Start: time.Date(ref.Year(), month, 1, 0, 0, 0, 0, ref.Location()),
		End:   time.Date(ref.Year(), month+1, 0, 23, 59, 59, lastNano, ref.Location()),
	}
}

// Year returns Jan 1 00:00 to Dec 31 23:59:59.999 of the year offset years
// away from the current one.
func (t *Tools) Year(offset int) Range {
	now := t.Now()
	year := now.Year() + offset
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   time.Date(year, time.December, 31, 23, 59, 59, lastNano, now.Location()),
	}
}

// DayRange returns midnight of the day start days from today through the
// last millisecond of the day end days from today. For start <= end it
// covers end-start+1 whole days.
func (t *Tools) DayRange(start, end int) Range {
	now := t.Now()
	return Range{
		Start: startOfDay(now.AddDate(0, 0, start)),
		End:   endOfDay(now.AddDate(0, 0, end)),
	}
}

// Shortcut names a frequently used day range.
type Shortcut string

const (
	Today      Shortcut = "today"
	Yesterday  Shortcut = "yesterday"
	Last7Days  Shortcut = "last7"
	Last30Days Shortcut = "last30"
)

// ErrUnknownShortcut is returned for names outside Shortcuts().
var ErrUnknownShortcut = errors.New("unknown range shortcut")

var shortcutSpans = map[Shortcut][2]int{
	Today:      {0, 0},
	Yesterday:  {-1, -1},
	Last7Days:  {-6, 0},
	Last30Days: {-30, 0},
}

var shortcutLabels = map[Shortcut]string{
	Today:      "今天",
	Yesterday:  "昨天",
	Last7Days:  "最近7天",
	Last30Days: "最近30天",
}

// Shortcuts lists the known shortcuts in display order.
func Shortcuts() []Shortcut {
	return []Shortcut{Today, Yesterday, Last7Days, Last30Days}
}

// Label returns the display label used by date pickers.
func (s Shortcut) Label() string {
	if l, ok := shortcutLabels[s]; ok {
		return l
	}
	return string(s)
}

// Span returns the start and end day offsets backing the shortcut.
func (s Shortcut) Span() (start, end int, ok bool) {
	span, ok := shortcutSpans[s]
	return span[0], span[1], ok
}

// Shortcut evaluates a named range. Last30Days reaches 30 days back and so
// covers 31 days including today.
func (t *Tools) Shortcut(name Shortcut) (Range, error) {
	start, end, ok := name.Span()
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownShortcut, string(name))
	}
	return t.DayRange(start, end), nil
}
