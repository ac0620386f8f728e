package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is wrapped by every ParseInstant failure.
var ErrInvalidDate = errors.New("invalid date")

// layouts are tried in order. Fractional seconds after the seconds field
// are accepted by time.Parse even when a layout omits them.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// ParseInstant reads a timestamp as the front end would receive it. All-digit
// input is a Unix timestamp: seconds when exactly 10 digits long, otherwise
// milliseconds. Text without a zone offset is read in loc (time.Local when
// nil), date-only ISO text like "2023-03-05" included: it means midnight in
// loc, not UTC midnight as a browser Date would read it. The result is
// always expressed in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}

	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
		}
		if len(s) == 10 {
			return time.Unix(n, 0).In(loc), nil
		}
		return time.UnixMilli(n).In(loc), nil
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
