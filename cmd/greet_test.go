package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGreetCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"now", []string{"greet"}, "下午好  2023-03-05 14:30 周日"},
		{"early morning", []string{"greet", "2023-03-06 05:59"}, "凌晨好  2023-03-06 05:59 周一"},
		{"morning", []string{"greet", "2023-03-06 08:00"}, "早上好  2023-03-06 08:00 周一"},
		{"noon", []string{"greet", "2023-03-06 12:00"}, "中午好  2023-03-06 12:00 周一"},
		{"late night", []string{"greet", "2023-03-06 23:10"}, "夜里好  2023-03-06 23:10 周一"},
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

func TestGreetJSON(t *testing.T) {
	setupCmdTest(t)

	out, _, err := runCmd(t, "greet", "--tz", "Asia/Shanghai", "-o", "json")
	if err != nil {
		t.Fatalf("greet -o json returned error: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	// 14:30 UTC is 22:30 in Shanghai.
	if got["greeting"] != "夜里好" {
		t.Errorf("greeting = %q, want %q", got["greeting"], "夜里好")
	}
}
