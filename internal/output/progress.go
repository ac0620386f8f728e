package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const barWidth = 20

// FormatProgress renders a progress bar in the format:
//
//	1,180/1,204 published (98%)  ███████████████████░
//
// The bar is fixed at 20 characters using █ for filled and ░ for remaining.
// An empty verb reads "completed".
func FormatProgress(done, total int64, verb string) string {
	if verb == "" {
		verb = "completed"
	}
	var pct, filled int64
	if total > 0 {
		pct = done * 100 / total
		filled = done * barWidth / total
		if filled > barWidth {
			filled = barWidth
		}
		if filled < 0 {
			filled = 0
		}
	}

	bar := strings.Repeat("█", int(filled)) + strings.Repeat("░", barWidth-int(filled))
	return fmt.Sprintf("%s/%s %s (%d%%)  %s", humanize.Comma(done), humanize.Comma(total), verb, pct, bar)
}
