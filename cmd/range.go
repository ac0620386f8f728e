package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	rangeFrom        string
	rangeTemplate    string
	rangeInteractive bool
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Compute day, week, month and year ranges",
	Long: `Compute instants and ranges relative to today.

Offsets are whole numbers of units away from the current one. The words
"this", "next" and "last" stand for 0, 1 and -1. Pass negative numbers
after "--":

  mpp range week -- -1
  mpp range span -- -6 0`,
}

var rangeDayCmd = &cobra.Command{
	Use:   "day [offset]",
	Short: "Show now shifted by offset days",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRangeInstant(func(t *calendar.Tools, n int) time.Time { return t.Day(n) }),
}

var rangeLaterCmd = &cobra.Command{
	Use:   "later [offset]",
	Short: "Show now minus offset days",
	Long:  `Show now minus offset days. Positive offsets move back in time.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRangeInstant(func(t *calendar.Tools, n int) time.Time { return t.LaterDay(n) }),
}

var rangeWeekCmd = &cobra.Command{
	Use:   "week [offset]",
	Short: "Show the Monday-to-Sunday week offset weeks away",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRangeSpan("week", func(t *calendar.Tools, n int) calendar.Range { return t.Week(n) }),
}

var rangeMonthCmd = &cobra.Command{
	Use:   "month [offset]",
	Short: "Show the calendar month offset months away",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRangeSpan("month", func(t *calendar.Tools, n int) calendar.Range { return t.Month(n) }),
}

var rangeYearCmd = &cobra.Command{
	Use:   "year [offset]",
	Short: "Show the calendar year offset years away",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRangeSpan("year", func(t *calendar.Tools, n int) calendar.Range { return t.Year(n) }),
}

var rangeSpanCmd = &cobra.Command{
	Use:   "span <start> <end>",
	Short: "Show whole days from start to end days away",
	Args:  cobra.ExactArgs(2),
	RunE:  runRangeDaySpan,
}

var rangeShortcutCmd = &cobra.Command{
	Use:   "shortcut [name]",
	Short: "Show a named range (today, yesterday, last7, last30)",
	Long: `Show a named range. Without a name, list every shortcut with its range.
Use --interactive to pick one from a list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRangeShortcut,
}

func init() {
	rangeCmd.PersistentFlags().StringVar(&rangeFrom, "from", "", "Evaluate as of this date instead of now")
	rangeCmd.PersistentFlags().StringVar(&rangeTemplate, "template", "", "Output template (default: config template)")
	rangeShortcutCmd.Flags().BoolVarP(&rangeInteractive, "interactive", "i", false, "Pick a shortcut from a list")

	rangeCmd.AddCommand(rangeDayCmd)
	rangeCmd.AddCommand(rangeLaterCmd)
	rangeCmd.AddCommand(rangeWeekCmd)
	rangeCmd.AddCommand(rangeMonthCmd)
	rangeCmd.AddCommand(rangeYearCmd)
	rangeCmd.AddCommand(rangeSpanCmd)
	rangeCmd.AddCommand(rangeShortcutCmd)
	rootCmd.AddCommand(rangeCmd)
}

func resetRangeFlags() {
	rangeFrom = ""
	rangeTemplate = ""
	rangeInteractive = false
}

// rangeJSON is the JSON shape of a computed range.
type rangeJSON struct {
	Name  string    `json:"name,omitempty"`
	Label string    `json:"label,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// parseOffset reads a signed offset argument. An absent argument is 0.
func parseOffset(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	switch strings.ToLower(args[i]) {
	case "this", "current":
		return 0, nil
	case "next":
		return 1, nil
	case "last", "prev", "previous":
		return -1, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, exitcode.Usagef("invalid offset %q: expected an integer", args[i])
	}
	return n, nil
}

func rangeTools() (*calendar.Tools, string, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, "", err
	}
	tools, err := newTools(cfg, rangeFrom)
	if err != nil {
		return nil, "", err
	}
	return tools, templateOr(cfg, rangeTemplate), nil
}

func runRangeInstant(compute func(*calendar.Tools, int) time.Time) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		offset, err := parseOffset(args, 0)
		if err != nil {
			return err
		}
		tools, template, err := rangeTools()
		if err != nil {
			return err
		}

		t := compute(tools, offset)
		w := cmd.OutOrStdout()
		if output.IsJSON(outputFormat) {
			return output.JSON(w, map[string]any{
				"offset":    offset,
				"time":      t,
				"formatted": output.FormatDateTime(t, template),
			})
		}
		fmt.Fprintln(w, output.FormatDateTime(t, template))
		return nil
	}
}

func runRangeSpan(unit string, compute func(*calendar.Tools, int) calendar.Range) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		offset, err := parseOffset(args, 0)
		if err != nil {
			return err
		}
		tools, template, err := rangeTools()
		if err != nil {
			return err
		}
		return renderRange(cmd, rangeJSON{Name: fmt.Sprintf("%s %+d", unit, offset)}, compute(tools, offset), template)
	}
}

func runRangeDaySpan(cmd *cobra.Command, args []string) error {
	start, err := parseOffset(args, 0)
	if err != nil {
		return err
	}
	end, err := parseOffset(args, 1)
	if err != nil {
		return err
	}
	if start > end {
		return exitcode.Usagef("start offset %d is after end offset %d", start, end)
	}
	tools, template, err := rangeTools()
	if err != nil {
		return err
	}
	return renderRange(cmd, rangeJSON{Name: fmt.Sprintf("days %+d..%+d", start, end)}, tools.DayRange(start, end), template)
}

func runRangeShortcut(cmd *cobra.Command, args []string) error {
	tools, template, err := rangeTools()
	if err != nil {
		return err
	}

	if !rangeInteractive && len(args) == 0 {
		return listShortcuts(cmd, tools, template)
	}

	name, err := interactiveOrArg(cmd, args, rangeInteractive, shortcutItems, "Select a range")
	if err != nil {
		return err
	}
	sc := calendar.Shortcut(strings.ToLower(name))
	r, err := tools.Shortcut(sc)
	if err != nil {
		return exitcode.Usagef("unknown shortcut %q (valid: %s)", name, strings.Join(shortcutNames(), ", "))
	}
	return renderRange(cmd, rangeJSON{Name: string(sc), Label: sc.Label()}, r, template)
}

func listShortcuts(cmd *cobra.Command, tools *calendar.Tools, template string) error {
	var entries []rangeJSON
	for _, sc := range calendar.Shortcuts() {
		r, _ := tools.Shortcut(sc)
		entries = append(entries, rangeJSON{Name: string(sc), Label: sc.Label(), Start: r.Start, End: r.End, Days: r.Days()})
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, entries)
	}

	lw := output.NewListWriter(w, "NAME", "LABEL", "RANGE", "DAYS")
	for _, e := range entries {
		lw.Row(e.Name, e.Label, output.FormatRange(calendar.Range{Start: e.Start, End: e.End}, template), strconv.Itoa(e.Days))
	}
	lw.Flush()
	return nil
}

func renderRange(cmd *cobra.Command, meta rangeJSON, r calendar.Range, template string) error {
	meta.Start, meta.End, meta.Days = r.Start, r.End, r.Days()

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, meta)
	}
	fmt.Fprintf(w, "%s  %s\n", output.FormatRange(r, template), output.Dim(fmt.Sprintf("(%d days)", meta.Days)))
	return nil
}

func shortcutNames() []string {
	var names []string
	for _, sc := range calendar.Shortcuts() {
		names = append(names, string(sc))
	}
	return names
}

func shortcutItems() ([]selectItem, error) {
	var items []selectItem
	for _, sc := range calendar.Shortcuts() {
		start, end, _ := sc.Span()
		items = append(items, selectItem{
			id:          string(sc),
			title:       sc.Label(),
			description: fmt.Sprintf("%s: days %+d to %+d", sc, start, end),
		})
	}
	return items, nil
}
