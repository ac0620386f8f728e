package calendar

import (
	"fmt"
	"time"
)

const (
	justNowLimit = 10 * time.Second
	secondsLimit = time.Minute
	minutesLimit = time.Hour
	hoursLimit   = OneDay
	daysLimit    = 3 * OneDay
)

// Past phrases ts relative to now: 刚刚 under ten seconds, then N秒前,
// N分钟前, N小时前 and N天前 (all floor-divided) up to three days. Older
// instants fall back to Format with template. Future instants read as 刚刚.
func (t *Tools) Past(ts time.Time, template string) string {
	return past(t.Now(), ts.In(t.location()), template)
}

// PastString parses s with ParseInstant before phrasing it.
func (t *Tools) PastString(s, template string) (string, error) {
	ts, err := ParseInstant(s, t.location())
	if err != nil {
		return "", err
	}
	return t.Past(ts, template), nil
}

func past(now, ts time.Time, template string) string {
	elapsed := now.Sub(ts).Milliseconds()
	switch {
	case elapsed < justNowLimit.Milliseconds():
		return "刚刚"
	case elapsed < secondsLimit.Milliseconds():
		return fmt.Sprintf("%d秒前", elapsed/time.Second.Milliseconds())
	case elapsed < minutesLimit.Milliseconds():
		return fmt.Sprintf("%d分钟前", elapsed/time.Minute.Milliseconds())
	case elapsed < hoursLimit.Milliseconds():
		return fmt.Sprintf("%d小时前", elapsed/time.Hour.Milliseconds())
	case elapsed < daysLimit.Milliseconds():
		return fmt.Sprintf("%d天前", elapsed/OneDay.Milliseconds())
	default:
		return Format(ts, template)
	}
}
