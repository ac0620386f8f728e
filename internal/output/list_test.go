package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funfan0517/MediaPublishPlatform/internal/testutil"
)

func TestListWriter(t *testing.T) {
	var buf bytes.Buffer
	lw := NewListWriter(&buf, "KEY", "SCOPE", "SIZE")
	lw.Row("token", "local", "12 B")
	lw.Row("recent-files", "local", "1.2 kB")
	lw.Row("draft", "session", "310 B")
	lw.FlushWithFooter("Total: 3 keys")

	testutil.AssertSnapshot(t, "list-view.txt", buf.String())
}

func TestListWriterCJKAlignment(t *testing.T) {
	var buf bytes.Buffer
	lw := NewListWriter(&buf, "NAME", "TYPE")
	lw.Row("小红书", "1")
	lw.Row("tiktok", "5")
	lw.Flush()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	// 小红书 is six cells wide, the same as tiktok.
	if lines[2] != "小红书    1" || lines[3] != "tiktok    5" {
		t.Errorf("rows not aligned:\n%q\n%q", lines[2], lines[3])
	}
}

func TestListWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	lw := NewListWriter(&buf, "KEY", "SIZE")
	lw.FlushWithFooter("Total: 0 keys")

	want := "KEY    SIZE\n" + singleSeparator + "\n\nTotal: 0 keys\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestListWriterSingleColumn(t *testing.T) {
	var buf bytes.Buffer
	lw := NewListWriter(&buf, "SHORTCUT")
	lw.Row("today")
	lw.Row("last30")
	lw.Flush()

	want := "SHORTCUT\n" + singleSeparator + "\ntoday\nlast30\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestListWriterNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewListWriter(&buf).Flush()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
