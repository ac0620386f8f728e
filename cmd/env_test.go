package cmd

import (
	"testing"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/config"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

func TestLocationPrecedence(t *testing.T) {
	setupCmdTest(t)

	cfg := &config.Config{Timezone: "Asia/Shanghai"}
	loc, err := location(cfg)
	if err != nil {
		t.Fatalf("location returned error: %v", err)
	}
	if loc.String() != "Asia/Shanghai" {
		t.Errorf("location = %s, want the configured zone", loc)
	}

	timezone = "America/New_York"
	loc, err = location(cfg)
	if err != nil {
		t.Fatalf("location returned error: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Errorf("location = %s, want --tz to win", loc)
	}

	timezone = "Nowhere/Special"
	if _, err := location(cfg); exitcode.ExitCode(err) != exitcode.UsageError {
		t.Errorf("bad --tz should be a usage error, got %v", err)
	}
}

func TestNewToolsFrom(t *testing.T) {
	setupCmdTest(t)
	cfg := &config.Config{Timezone: "UTC"}

	tools, err := newTools(cfg, "")
	if err != nil {
		t.Fatalf("newTools returned error: %v", err)
	}
	if !tools.Now().Equal(testNow) {
		t.Errorf("now = %s, want the package clock %s", tools.Now(), testNow)
	}

	tools, err = newTools(cfg, "2020-02-29 08:00")
	if err != nil {
		t.Fatalf("newTools returned error: %v", err)
	}
	want := time.Date(2020, time.February, 29, 8, 0, 0, 0, time.UTC)
	if !tools.Now().Equal(want) {
		t.Errorf("now = %s, want %s", tools.Now(), want)
	}

	if _, err := newTools(cfg, "yesterday-ish"); exitcode.ExitCode(err) != exitcode.UsageError {
		t.Errorf("bad --from should be a usage error, got %v", err)
	}
}

func TestTemplateOr(t *testing.T) {
	cfg := &config.Config{Template: "YYYY-mm-dd"}
	if got := templateOr(cfg, ""); got != "YYYY-mm-dd" {
		t.Errorf("templateOr empty = %q, want the configured template", got)
	}
	if got := templateOr(cfg, "HH:MM"); got != "HH:MM" {
		t.Errorf("templateOr flag = %q, want the flag value", got)
	}
}

func TestDateOrNow(t *testing.T) {
	setupCmdTest(t)
	cfg := &config.Config{Timezone: "UTC"}
	tools, _ := newTools(cfg, "")

	got, err := dateOrNow(tools, nil, time.UTC)
	if err != nil || !got.Equal(testNow) {
		t.Errorf("dateOrNow(nil) = %s, %v; want now", got, err)
	}

	got, err = dateOrNow(tools, []string{"1678026600"}, time.UTC)
	if err != nil || !got.Equal(testNow) {
		t.Errorf("dateOrNow(unix) = %s, %v; want %s", got, err, testNow)
	}
}

func TestLoadConfigFailure(t *testing.T) {
	setupCmdTest(t)
	t.Setenv("MPP_STORAGE_LOCAL", "floppy")

	_, _, err := runCmd(t, "weeknum")
	if err == nil {
		t.Fatal("expected error for an invalid storage backend")
	}
	if code := exitcode.ExitCode(err); code != exitcode.GeneralError {
		t.Errorf("exit code = %d, want %d", code, exitcode.GeneralError)
	}
}
