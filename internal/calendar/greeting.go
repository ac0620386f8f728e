package calendar

import "time"

// greetings maps exclusive upper hour bounds to their greeting.
var greetings = []struct {
	before int
	text   string
}{
	{6, "凌晨好"},
	{9, "早上好"},
	{12, "上午好"},
	{14, "中午好"},
	{17, "下午好"},
	{19, "傍晚好"},
	{22, "晚上好"},
}

// Greeting returns the time-of-day greeting for t's hour in t's location.
func Greeting(t time.Time) string {
	hour := t.Hour()
	for _, g := range greetings {
		if hour < g.before {
			return g.text
		}
	}
	return "夜里好"
}
