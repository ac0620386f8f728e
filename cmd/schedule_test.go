package cmd

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

func TestScheduleCommand(t *testing.T) {
	setupCmdTest(t)

	out, _, err := runCmd(t, "schedule", "--count", "3", "--per-day", "2", "--start-days", "1")
	if err != nil {
		t.Fatalf("schedule returned error: %v", err)
	}

	for _, want := range []string{
		"TIME", "WEEKDAY", "WEEK",
		"2023-03-06 09:00", "2023-03-06 12:00", "2023-03-07 09:00",
		"周一", "周二",
		"Total: 3 items over 2023-03-06 → 03-07",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2023-03-07 12:00") {
		t.Errorf("only three slots should be planned, got:\n%s", out)
	}
}

func TestScheduleJSON(t *testing.T) {
	setupCmdTest(t)

	out, _, err := runCmd(t, "schedule", "-n", "4", "--per-day", "2", "--times", "10:30,20:00", "-o", "json")
	if err != nil {
		t.Fatalf("schedule -o json returned error: %v", err)
	}

	var plan []time.Time
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	want := []time.Time{
		time.Date(2023, 3, 5, 10, 30, 0, 0, time.UTC),
		time.Date(2023, 3, 5, 20, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 6, 10, 30, 0, 0, time.UTC),
		time.Date(2023, 3, 6, 20, 0, 0, 0, time.UTC),
	}
	if len(plan) != len(want) {
		t.Fatalf("got %d slots, want %d", len(plan), len(want))
	}
	for i := range want {
		if !plan[i].Equal(want[i]) {
			t.Errorf("plan[%d] = %s, want %s", i, plan[i], want[i])
		}
	}
}

func TestScheduleErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing count", []string{"schedule"}, `required flag(s) "count" not set`},
		{"zero count", []string{"schedule", "-n", "0"}, "--count must be positive"},
		{"zero per day", []string{"schedule", "-n", "2", "--per-day", "0"}, "--per-day must be positive"},
		{"negative start", []string{"schedule", "-n", "2", "--start-days=-1"}, "--start-days must not be negative"},
		{"bad slot", []string{"schedule", "-n", "2", "--times", "09:00,25:00"}, `invalid publish time "25:00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCmdTest(t)

			_, _, err := runCmd(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestPlanScheduleUsageErrors(t *testing.T) {
	tools := calendar.New(calendar.FixedClock(testNow), time.UTC)

	_, err := planSchedule(tools, 1, 1, []string{"noon"}, 0)
	if code := exitcode.ExitCode(err); code != exitcode.UsageError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UsageError)
	}

	plan, err := planSchedule(tools, 2, 5, nil, 0)
	if err != nil {
		t.Fatalf("planSchedule returned error: %v", err)
	}
	if plan[0].Hour() != 9 || plan[1].Hour() != 12 {
		t.Errorf("default slots = %s, %s; want 09:00 and 12:00", plan[0], plan[1])
	}
}
