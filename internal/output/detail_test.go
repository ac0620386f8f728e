package output

import (
	"bytes"
	"testing"

	"github.com/funfan0517/MediaPublishPlatform/internal/testutil"
)

func TestDetailWriter(t *testing.T) {
	var buf bytes.Buffer
	d := NewDetailWriter(&buf, "TASK", "7f6c1d2e")
	d.Fields([]KeyValue{
		KV("Status", "发布中"),
		KV("Platform", "douyin"),
		KV("Progress", "1/2 published (50%)"),
	})
	d.Section("RECORDS")
	buf.WriteString("  demo.mp4  发布成功\n")

	testutil.AssertSnapshot(t, "detail-view.txt", buf.String())
}

func TestDetailWriterWideKeys(t *testing.T) {
	var buf bytes.Buffer
	d := NewDetailWriter(&buf, "RANGE", "本周")
	d.Fields([]KeyValue{
		KV("开始", "2025-01-20 00:00:00"),
		KV("Days", "7"),
	})

	testutil.AssertSnapshot(t, "detail-view-wide-keys.txt", buf.String())
}

func TestDetailWriterSingleField(t *testing.T) {
	var buf bytes.Buffer
	d := NewDetailWriter(&buf, "PLATFORM", "douyin")
	d.Field("Type", "3")

	want := "PLATFORM: douyin\n" + doubleSeparator + "\n\nType:  3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
