package calendar

import (
	"fmt"
	"time"
)

// Age describes the time from birth to on: whole years (N岁) once past a
// year, otherwise months (N个月), otherwise days (N天). A negative day
// difference borrows a flat 30 days.
func Age(birth, on time.Time) string {
	on = on.In(birth.Location())
	years := on.Year() - birth.Year()
	months := int(on.Month()) - int(birth.Month())
	days := on.Day() - birth.Day()

	if months < 0 || (months == 0 && days < 0) {
		years--
		months += 12
	}
	if days < 0 {
		days += 30
	}

	switch {
	case years > 0:
		return fmt.Sprintf("%d岁", years)
	case months > 0:
		return fmt.Sprintf("%d个月", months)
	default:
		return fmt.Sprintf("%d天", days)
	}
}
