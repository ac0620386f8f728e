package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const separatorWidth = 80

// doubleSeparator is a line of ══ characters spanning separatorWidth.
var doubleSeparator = strings.Repeat("═", separatorWidth)

// singleSeparator is a line of ── characters spanning separatorWidth.
var singleSeparator = strings.Repeat("─", separatorWidth)

// DetailWriter builds a detail view for a single entity.
//
// Usage:
//
//	d := output.NewDetailWriter(w, "TASK", "7f6c1d2e")
//	d.Field("Status", "发布中")
//	d.Field("Files", "3")
//	d.Section("RECORDS")
//	lw := output.NewListWriter(w, "FILE", "ACCOUNT", "STATUS")
type DetailWriter struct {
	w io.Writer
}

// NewDetailWriter writes the entity title line and double separator.
// entityType should be ALL CAPS (e.g. "TASK", "PLATFORM", "RANGE").
func NewDetailWriter(w io.Writer, entityType, title string) *DetailWriter {
	fmt.Fprintf(w, "%s: %s\n", Bold(entityType), Bold(title))
	fmt.Fprintln(w, doubleSeparator)
	fmt.Fprintln(w)
	return &DetailWriter{w: w}
}

// Field writes a single key-value metadata line. Use Fields to align a block.
func (d *DetailWriter) Field(key, value string) {
	d.fieldWithWidth(key, value, 0)
}

func (d *DetailWriter) fieldWithWidth(key, value string, width int) {
	pad := width - lipgloss.Width(key)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(d.w, "%s%s:  %s\n", strings.Repeat(" ", pad), key, value)
}

// KeyValue is a key-value pair for use with Fields.
type KeyValue struct {
	Key   string
	Value string
}

// KV is a convenience constructor for KeyValue.
func KV(key, value string) KeyValue {
	return KeyValue{Key: key, Value: value}
}

// Fields writes a block of key-value pairs with right-aligned keys.
// The alignment width is computed automatically from the longest key.
func (d *DetailWriter) Fields(fields []KeyValue) {
	width := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.Key); w > width {
			width = w
		}
	}
	for _, f := range fields {
		d.fieldWithWidth(f.Key, f.Value, width)
	}
}

// Section writes a section header with a single-line separator.
// The header name should be in ALL CAPS.
func (d *DetailWriter) Section(name string) {
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, Bold(name))
	fmt.Fprintln(d.w, singleSeparator)
}
