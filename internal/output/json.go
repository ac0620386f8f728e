package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes v to w as two-space indented JSON followed by a newline.
// URLs keep their & and < characters unescaped.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// IsJSON reports whether -o selects JSON.
func IsJSON(format string) bool { return format == "json" }
