// Package output renders mpp command results: detail views, aligned
// lists, mutation summaries, progress and JSON.
//
// Color is off when NO_COLOR is set (to anything) or stdout is not a
// terminal, so piped output is plain text.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	st, err := os.Stdout.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}

func paint(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// Green marks success: published tasks, stored keys.
func Green(s string) string { return paint(greenStyle, s) }

// Red marks failures.
func Red(s string) string { return paint(redStyle, s) }

// Yellow marks pending work and dry runs.
func Yellow(s string) string { return paint(yellowStyle, s) }

func Dim(s string) string  { return paint(dimStyle, s) }
func Bold(s string) string { return paint(boldStyle, s) }
