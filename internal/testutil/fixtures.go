package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fixturesDir returns the absolute path to the test/fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "test", "fixtures")
}

// LoadFixture reads a backend response fixture from test/fixtures/.
func LoadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixturesDir(), name))
	if err != nil {
		t.Fatalf("failed to load fixture %q: %v", name, err)
	}
	return data
}

// FixtureData decodes the "data" member of a fixture's response envelope
// into a T, for comparing a client's decoded result against the raw payload.
func FixtureData[T any](t *testing.T, name string) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(LoadFixture(t, name), &env); err != nil {
		t.Fatalf("decoding fixture %q: %v", name, err)
	}
	return env.Data
}
