package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "rewrite golden files under test/snapshots")

func goldenPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "test", "snapshots", name)
}

// AssertSnapshot compares rendered output with test/snapshots/<name>.
// Line endings are normalized so golden files survive a checkout on Windows.
// Run the tests with -update to rewrite the file from actual.
func AssertSnapshot(t *testing.T, name, actual string) {
	t.Helper()
	path := goldenPath(name)

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("writing golden %s: %v", name, err)
		}
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden %s missing (run with -update): %v", name, err)
	}
	want := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if want != actual {
		t.Errorf("%s differs from golden file\n--- want ---\n%s\n--- got ---\n%s", name, want, actual)
	}
}
