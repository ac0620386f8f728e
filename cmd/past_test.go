package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPastCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"just now", []string{"past", "2023-03-05 14:29:55"}, "刚刚"},
		{"future", []string{"past", "2023-03-06"}, "刚刚"},
		{"seconds", []string{"past", "2023-03-05 14:29:30"}, "30秒前"},
		{"minutes", []string{"past", "2023-03-05 14:00:00"}, "30分钟前"},
		{"hours", []string{"past", "2023-03-05 09:30"}, "5小时前"},
		{"days", []string{"past", "2023-03-03 14:30:00"}, "2天前"},
		{"older uses template", []string{"past", "2023-03-01 08:00:00"}, "2023-03-01 08:00:00"},
		{"older with flag template", []string{"past", "2023-03-01 08:00:00", "-t", "mm月dd日"}, "03月01日"},
		{"unix milliseconds", []string{"past", "1678026540000"}, "1分钟前"},
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

func TestPastJSON(t *testing.T) {
	setupCmdTest(t)

	out, _, err := runCmd(t, "past", "2023-03-05 14:00:00", "-o", "json")
	if err != nil {
		t.Fatalf("past -o json returned error: %v", err)
	}

	var got struct {
		Seconds int64  `json:"seconds"`
		Past    string `json:"past"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Seconds != 1800 {
		t.Errorf("seconds = %d, want 1800", got.Seconds)
	}
	if got.Past != "30分钟前" {
		t.Errorf("past = %q, want %q", got.Past, "30分钟前")
	}
}

func TestPastRequiresDate(t *testing.T) {
	setupCmdTest(t)

	if _, _, err := runCmd(t, "past"); err == nil {
		t.Fatal("expected error without a date")
	}
}
