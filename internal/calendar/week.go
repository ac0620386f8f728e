package calendar

import (
	"math"
	"time"
)

// WeekOfYear numbers the Monday-start week containing t.
//
// The date is moved to the Saturday of its week, then measured in ceiling
// days from the first Monday strictly after Jan 1 of that Saturday's year,
// and the day count is ceiling-divided by 7. A partial leading week folds
// into week 1, and a year whose Jan 1 is a Monday reports 0 for that first
// week. Every day of one Monday-to-Sunday week yields the same number.
func WeekOfYear(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	saturday := t.AddDate(0, 0, 6-weekday)

	jan1 := time.Date(saturday.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	skip := 1
	if wd := int(jan1.Weekday()); wd != 0 {
		skip = 7 - wd + 1
	}
	firstMonday := time.Date(saturday.Year(), time.January, 1+skip, 0, 0, 0, 0, t.Location())

	days := math.Ceil(float64(saturday.Sub(firstMonday)) / float64(OneDay))
	return int(math.Ceil(days / 7))
}
