package output

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// GridWidth is the wrap width used when RenderMarkdown gets 0. An eight
// column month grid with CJK headers fits well inside it.
const GridWidth = 60

// markdownStyle picks glamour's plain "notty" style whenever colors are off,
// so piped month grids carry no escape sequences.
func markdownStyle() glamour.TermRendererOption {
	if !colorEnabled() {
		return glamour.WithStandardStyle("notty")
	}
	return glamour.WithAutoStyle()
}

// RenderMarkdown writes content (month grids, platform notes) to w, wrapped
// at width or GridWidth when width is 0. Empty content writes nothing.
func RenderMarkdown(w io.Writer, content string, width int) error {
	if content == "" {
		return nil
	}
	if width <= 0 {
		width = GridWidth
	}

	r, err := glamour.NewTermRenderer(markdownStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
