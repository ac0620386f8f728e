package output

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DefaultLimit caps list output when neither --limit nor --all is given.
const DefaultLimit = 100

// Limit holds the --limit and --all flags of a list command.
type Limit struct {
	N   int
	All bool
}

// DefaultPage is the flag state before parsing.
func DefaultPage() Limit { return Limit{N: DefaultLimit} }

// Register adds --limit and --all to cmd. The two are mutually exclusive.
func (l *Limit) Register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&l.N, "limit", DefaultLimit, "Maximum number of rows to show (0 for no cap)")
	cmd.Flags().BoolVar(&l.All, "all", false, "Show every row (ignore --limit)")
	cmd.MarkFlagsMutuallyExclusive("limit", "all")
}

// Cap returns the row cap, 0 meaning none.
func (l Limit) Cap() int {
	if l.All || l.N < 0 {
		return 0
	}
	return l.N
}

// Page returns the rows of items that fit under l and how many were left out.
func Page[T any](items []T, l Limit) ([]T, int) {
	n := l.Cap()
	if n == 0 || len(items) <= n {
		return items, 0
	}
	return items[:n], len(items) - n
}

// ShowingFooter is the footer of a list cut short by Page.
// noun is singular; "key" yields "... keys (use --all to see every key)".
func ShowingFooter(shown, total int, noun string) string {
	return fmt.Sprintf("Showing %d of %d %ss (use --all to see every %s)", shown, total, noun, noun)
}
