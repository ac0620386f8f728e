package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MutationItem is one thing a command changed: a cancelled task, a
// removed key. Context is only shown by dry runs, e.g. "(12 B)".
type MutationItem struct {
	Ref     string
	Title   string
	Context string
}

// FailedItem is a ref the command could not change and the backend's reason.
type FailedItem struct {
	Ref    string
	Reason string
}

// DetailLine is one "Key: value" row of a single-entity dry run.
type DetailLine = KeyValue

// MutationSingle prints a one-line confirmation such as
// "Cancelled task 7f6c1d2e".
func MutationSingle(w io.Writer, message string) {
	fmt.Fprintln(w, message)
}

// MutationBatch prints header, a blank line and one aligned row per item.
func MutationBatch(w io.Writer, header string, items []MutationItem) {
	fmt.Fprintf(w, "%s\n\n", header)
	writeItems(w, items)
}

// MutationPartialFailure prints what succeeded, then a "Failed:" block
// with each ref and its reason in red.
func MutationPartialFailure(w io.Writer, header string, succeeded []MutationItem, failed []FailedItem) {
	MutationBatch(w, header, succeeded)
	fmt.Fprintf(w, "\n%s\n\n", Red("Failed:"))
	for _, f := range failed {
		fmt.Fprintf(w, "  %s  %s\n", f.Ref, Red(f.Reason))
	}
}

// MutationDryRun prints a "Would ..." header and the items it would touch.
func MutationDryRun(w io.Writer, header string, items []MutationItem) {
	fmt.Fprintf(w, "%s\n\n", Yellow(header))
	for _, it := range items {
		parts := []string{" ", it.Ref}
		if it.Title != "" {
			parts = append(parts, it.Title)
		}
		if it.Context != "" {
			parts = append(parts, Dim(it.Context))
		}
		fmt.Fprintln(w, Yellow(strings.Join(parts, " ")))
	}
}

// MutationDryRunDetail prints a "Would ..." header followed by aligned
// detail lines, for commands acting on one entity.
func MutationDryRunDetail(w io.Writer, header string, details []DetailLine) {
	fmt.Fprintln(w, Yellow(header))
	if len(details) == 0 {
		return
	}
	width := 0
	for _, d := range details {
		width = max(width, lipgloss.Width(d.Key)+1)
	}
	fmt.Fprintln(w)
	for _, d := range details {
		fmt.Fprintln(w, Yellow("  "+padCells(d.Key+":", width)+" "+d.Value))
	}
}

func writeItems(w io.Writer, items []MutationItem) {
	width := 0
	for _, it := range items {
		width = max(width, lipgloss.Width(it.Ref))
	}
	for _, it := range items {
		fmt.Fprintf(w, "  %s %s\n", padCells(it.Ref, width), it.Title)
	}
}

// padCells right-pads s with spaces to width terminal cells.
func padCells(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
