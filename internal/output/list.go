package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnGap separates list columns.
const columnGap = "    "

// ListWriter buffers rows and prints them as an aligned table:
//
//	lw := output.NewListWriter(w, "KEY", "SIZE")
//	lw.Row("token", "12 B")
//	lw.FlushWithFooter("Total: 1 key")
//
// Widths are counted in terminal cells so CJK platform names line up.
type ListWriter struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

// NewListWriter starts a table. Headers are conventionally upper case.
func NewListWriter(w io.Writer, headers ...string) *ListWriter {
	return &ListWriter{w: w, headers: headers}
}

// Row queues one row. Missing trailing values print as blanks and extra
// values are dropped.
func (lw *ListWriter) Row(values ...string) {
	lw.rows = append(lw.rows, values)
}

// Flush prints the table without a footer.
func (lw *ListWriter) Flush() { lw.FlushWithFooter("") }

// FlushWithFooter prints the table, then a blank line and footer unless
// footer is empty. A ListWriter without headers prints nothing.
func (lw *ListWriter) FlushWithFooter(footer string) {
	if len(lw.headers) == 0 {
		return
	}
	widths := lw.columnWidths()

	lw.line(lw.headers, widths, Bold)
	fmt.Fprintln(lw.w, strings.Repeat("─", max(tableWidth(widths), separatorWidth)))
	for _, row := range lw.rows {
		lw.line(row, widths, nil)
	}
	if footer != "" {
		fmt.Fprintf(lw.w, "\n%s\n", footer)
	}
}

func (lw *ListWriter) columnWidths() []int {
	widths := make([]int, len(lw.headers))
	for _, row := range append([][]string{lw.headers}, lw.rows...) {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}
	return widths
}

func tableWidth(widths []int) int {
	total := len(columnGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

// line pads every cell but the last to its column width. style, when set,
// applies after the padding is measured.
func (lw *ListWriter) line(values []string, widths []int, style func(string) string) {
	var b strings.Builder
	last := len(widths) - 1
	for i, w := range widths {
		cell := ""
		if i < len(values) {
			cell = values[i]
		}
		pad := w - lipgloss.Width(cell)
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", pad) + columnGap)
		}
	}
	fmt.Fprintln(lw.w, b.String())
}
