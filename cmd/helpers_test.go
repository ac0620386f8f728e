package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testNow is a Sunday afternoon: week 9 of 2023. Week ranges taken on a
// Sunday start the following Monday, 2023-03-06.
var testNow = time.Date(2023, time.March, 5, 14, 30, 0, 0, time.UTC)

var mppEnv = []string{
	"MPP_API_URL",
	"MPP_API_TOKEN",
	"MPP_API_TIMEOUT",
	"MPP_TEMPLATE",
	"MPP_STORAGE_LOCAL",
	"MPP_STORAGE_SESSION",
	"MPP_REDIS_ADDR",
	"MPP_REDIS_PASSWORD",
	"MPP_LOG_LEVEL",
	"MPP_LOG_FORMAT",
}

// setupCmdTest isolates a command test: temp config and cache dirs, UTC,
// no color, a fixed clock, no terminal and freshly reset flags.
func setupCmdTest(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range mppEnv {
		t.Setenv(k, "")
	}
	t.Setenv("MPP_TIMEZONE", "UTC")
	t.Setenv("NO_COLOR", "1")

	setClock(t, testNow)

	prevInteractive := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = prevInteractive })

	resetCmdState()
	t.Cleanup(resetCmdState)
}

// setClock pins "now" for the rest of the test.
func setClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := clock
	clock = calendar.FixedClock(now)
	t.Cleanup(func() { clock = prev })
}

// useMockBackend points every API client at ms.
func useMockBackend(t *testing.T, ms *testutil.MockServer) {
	t.Helper()
	prev := apiNewFunc
	apiNewFunc = func(opts ...api.Option) *api.Client {
		return api.New(append(opts, api.WithEndpoint(ms.URL()))...)
	}
	t.Cleanup(func() { apiNewFunc = prev })
}

// writeConfig writes a config file into the test's config dir.
func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "mpp")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func resetCmdState() {
	verbose = false
	outputFormat = ""
	timezone = ""

	resetRangeFlags()
	resetFormatFlags()
	resetPastFlags()
	resetAgeFlags()
	resetCalendarFlags()
	resetScheduleFlags()
	resetCacheFlags()
	resetPublishPostFlags()
	resetPublishStatusFlags()
	resetPublishPlatformFlags()
	resetSetupFlags()
	resetCompletionFlags()

	resetFlagState(rootCmd)
}

// resetFlagState clears pflag's Changed marks, which survive between
// Execute calls and would satisfy required flags in later tests.
func resetFlagState(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Name == "help" {
			_ = f.Value.Set("false")
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlagState(sub)
	}
}

// runCmd executes the root command with args and returns stdout and stderr.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
