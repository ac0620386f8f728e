package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTemplate is used by Format when the template is empty.
const DefaultTemplate = "YYYY-mm-dd HH:MM:SS"

// DefaultBracePattern is used by FormatBraces when the pattern is empty.
const DefaultBracePattern = "{y}-{m}-{d} {h}:{i}:{s}"

var weekdayNames = [7]string{"日", "一", "二", "三", "四", "五", "六"}

var quarterNames = [5]string{"", "一", "二", "三", "四"}

var (
	weekdayToken = regexp.MustCompile(`W+`)
	quarterToken = regexp.MustCompile(`Q+`)
	weekToken    = regexp.MustCompile(`Z+`)
	braceToken   = regexp.MustCompile(`\{(y|m|d|h|i|s|a)+\}`)
)

// numericFields are substituted after the named tokens. Their character
// classes are disjoint so the order among them does not matter.
var numericFields = []struct {
	token *regexp.Regexp
	value func(time.Time) int
}{
	{regexp.MustCompile(`Y+`), func(t time.Time) int { return t.Year() }},
	{regexp.MustCompile(`m+`), func(t time.Time) int { return int(t.Month()) }},
	{regexp.MustCompile(`d+`), func(t time.Time) int { return t.Day() }},
	{regexp.MustCompile(`H+`), func(t time.Time) int { return t.Hour() }},
	{regexp.MustCompile(`M+`), func(t time.Time) int { return t.Minute() }},
	{regexp.MustCompile(`S+`), func(t time.Time) int { return t.Second() }},
	{regexp.MustCompile(`q+`), Quarter},
}

// Quarter returns the calendar quarter of t, 1 through 4.
func Quarter(t time.Time) int {
	return (int(t.Month()) - 1 + 3) / 3
}

// WeekdayName returns the single-character Chinese weekday name of t.
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// Format renders t with a template. Recognized runs:
//
//	Y+ m+ d+ H+ M+ S+ q+   year, month, day, hour, minute, second, quarter
//	W / WW / WWW           三 / 周三 / 星期三
//	Q / QQQQ               一 / 第一季度
//	Z / ZZZ                9 / 第9周 (see WeekOfYear)
//
// A numeric run of length 1 renders the bare value; longer runs are
// zero-padded on the left to the run length. Only the first run of each
// class is replaced, so "YYYY YYYY" renders as "2023 YYYY". Everything
// else is copied through.
func Format(t time.Time, template string) string {
	if template == "" {
		template = DefaultTemplate
	}

	out := replaceFirst(template, weekdayToken, func(run string) string {
		name := WeekdayName(t)
		switch {
		case len(run) > 2:
			return "星期" + name
		case len(run) > 1:
			return "周" + name
		}
		return name
	})

	quarter := quarterNames[Quarter(t)]
	out = replaceFirst(out, quarterToken, func(run string) string {
		if len(run) == 4 {
			return "第" + quarter + "季度"
		}
		return quarter
	})

	week := strconv.Itoa(WeekOfYear(t))
	out = replaceFirst(out, weekToken, func(run string) string {
		if len(run) == 3 {
			return "第" + week + "周"
		}
		return week
	})

	for _, f := range numericFields {
		value := strconv.Itoa(f.value(t))
		out = replaceFirst(out, f.token, func(run string) string {
			if len(run) == 1 {
				return value
			}
			return padLeft(value, len(run))
		})
	}
	return out
}

// FormatBraces renders t with the brace dialect: {y} {m} {d} {h} {i} {s}
// for the numeric fields and {a} for the weekday character. Every token is
// replaced and numbers below 10 get a leading zero.
func FormatBraces(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultBracePattern
	}
	return braceToken.ReplaceAllStringFunc(pattern, func(match string) string {
		// The key is the last repetition inside the braces.
		var value int
		switch match[len(match)-2] {
		case 'y':
			value = t.Year()
		case 'm':
			value = int(t.Month())
		case 'd':
			value = t.Day()
		case 'h':
			value = t.Hour()
		case 'i':
			value = t.Minute()
		case 's':
			value = t.Second()
		case 'a':
			return WeekdayName(t)
		}
		if value < 10 {
			return "0" + strconv.Itoa(value)
		}
		return strconv.Itoa(value)
	})
}

func replaceFirst(s string, re *regexp.Regexp, repl func(run string) string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl(s[loc[0]:loc[1]]) + s[loc[1]:]
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
