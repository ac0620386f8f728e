package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPublishTimes are the daily slots used when a schedule names none.
var DefaultPublishTimes = []string{"09:00", "12:00", "15:00", "18:00", "21:00"}

// fallbackHour is used for a slot that is not a valid HH:MM.
const fallbackHour = 12

// Schedule plans timed publishing for total items, perDay items a day,
// starting startDays days from today. Each day takes the first slots of
// dailyTimes (DefaultPublishTimes when empty) until the day's quota or the
// remaining items run out, so perDay above len(dailyTimes) publishes fewer
// items per day. Seconds are zeroed.
func (t *Tools) Schedule(total, perDay int, dailyTimes []string, startDays int) ([]time.Time, error) {
	if perDay <= 0 {
		return nil, fmt.Errorf("items per day must be positive, got %d", perDay)
	}
	if total < 0 {
		return nil, fmt.Errorf("item count must not be negative, got %d", total)
	}
	if len(dailyTimes) == 0 {
		dailyTimes = DefaultPublishTimes
	}

	first := t.Now().AddDate(0, 0, startDays)
	daysNeeded := (total + perDay - 1) / perDay

	plan := make([]time.Time, 0, total)
	for day := 0; day < daysNeeded; day++ {
		date := first.AddDate(0, 0, day)
		n := min(perDay, total-len(plan), len(dailyTimes))
		for _, slot := range dailyTimes[:n] {
			hour, minute, ok := ParseClock(slot)
			if !ok {
				hour, minute = fallbackHour, 0
			}
			plan = append(plan, time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()))
		}
	}
	return plan, nil
}

// ParseClock reads an "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
