package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"now with default template", []string{"format"}, "2023-03-05 14:30:00"},
		{"unix seconds", []string{"format", "1678026600"}, "2023-03-05 14:30:00"},
		{"unix milliseconds", []string{"format", "1678026600000"}, "2023-03-05 14:30:00"},
		{"text date", []string{"format", "2023-03-05 09:05:07", "-t", "YYYY年mm月dd日 WWW"}, "2023年03月05日 星期日"},
		{"quarter and week", []string{"format", "2023-03-05", "-t", "QQQQ ZZZ"}, "第一季度 第9周"},
		{"first occurrence only", []string{"format", "2023-03-05", "-t", "dd/dd"}, "05/dd"},
		{"braces default", []string{"format", "2023-03-05 09:05:07", "--braces"}, "2023-03-05 09:05:07"},
		{"braces template", []string{"format", "2023-03-05", "--braces", "-t", "{y}/{m}/{d} 周{a} {m}"}, "2023/03/05 周日 03"},
		{"tz flag", []string{"format", "1678026600", "--tz", "Asia/Shanghai", "-t", "HH:MM"}, "22:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCmdTest(t)

			out, _, err := runCmd(t, tt.args...)
			if err != nil {
				t.Fatalf("%v returned error: %v", tt.args, err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatConfigTimezone(t *testing.T) {
	setupCmdTest(t)
	t.Setenv("MPP_TIMEZONE", "")
	writeConfig(t, "timezone: Asia/Shanghai\ntemplate: HH:MM\n")

	out, _, err := runCmd(t, "format", "1678026600")
	if err != nil {
		t.Fatalf("format returned error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "22:30" {
		t.Errorf("output = %q, want %q", got, "22:30")
	}
}

func TestFormatJSON(t *testing.T) {
	setupCmdTest(t)

	out, _, err := runCmd(t, "format", "2023-03-05 14:30:00", "-o", "json")
	if err != nil {
		t.Fatalf("format -o json returned error: %v", err)
	}

	var got formatJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	want := formatJSON{
		Time:      "2023-03-05T14:30:00.000Z",
		Formatted: "2023-03-05 14:30:00",
		Template:  "YYYY-mm-dd HH:MM:SS",
		Quarter:   1,
		Weekday:   "日",
		Week:      9,
	}
	if got != want {
		t.Errorf("format JSON = %+v, want %+v", got, want)
	}
}

func TestFormatInvalidDate(t *testing.T) {
	setupCmdTest(t)

	_, _, err := runCmd(t, "format", "not-a-date")
	if err == nil {
		t.Fatal("expected error for an unparseable date")
	}
	if code := exitcode.ExitCode(err); code != exitcode.UsageError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UsageError)
	}
}
