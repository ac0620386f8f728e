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
	calendarMonth int
	calendarFrom  string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month grid with week numbers",
	Long: `Show a Monday-start month grid with week numbers. Today is marked in bold.
Use --month to move by whole months, e.g. --month=-1 for last month.`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().IntVar(&calendarMonth, "month", 0, "Month offset from the current month")
	calendarCmd.Flags().StringVar(&calendarFrom, "from", "", "Evaluate as of this date instead of now")
	rootCmd.AddCommand(calendarCmd)
}

func resetCalendarFlags() {
	calendarMonth = 0
	calendarFrom = ""
}

// calendarWeek is one Monday-to-Sunday row. Days outside the month are 0.
type calendarWeek struct {
	Week int    `json:"week"`
	Days [7]int `json:"days"`
}

// monthWeeks lays out the month of r in Monday-start rows.
func monthWeeks(r calendar.Range) []calendarWeek {
	first := r.Start
	lastDay := r.End.Day()

	var weeks []calendarWeek
	var row calendarWeek
	col := (int(first.Weekday()) + 6) % 7
	for day := 1; day <= lastDay; day++ {
		if row.Week == 0 && row.Days == [7]int{} {
			row.Week = calendar.WeekOfYear(time.Date(first.Year(), first.Month(), day, 12, 0, 0, 0, first.Location()))
		}
		row.Days[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, row)
			row, col = calendarWeek{}, 0
		}
	}
	if row.Days != [7]int{} {
		weeks = append(weeks, row)
	}
	return weeks
}

// monthMarkdown renders the weeks as a markdown table. today is bolded when
// it is a day of the month in r (0 for none).
func monthMarkdown(r calendar.Range, weeks []calendarWeek, today int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", calendar.Format(r.Start, "YYYY年m月"))
	b.WriteString("| 周 | 一 | 二 | 三 | 四 | 五 | 六 | 日 |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, wk := range weeks {
		cells := []string{strconv.Itoa(wk.Week)}
		for _, d := range wk.Days {
			switch {
			case d == 0:
				cells = append(cells, " ")
			case d == today:
				cells = append(cells, "**"+strconv.Itoa(d)+"**")
			default:
				cells = append(cells, strconv.Itoa(d))
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

func runCalendar(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	tools, err := newTools(cfg, calendarFrom)
	if err != nil {
		return err
	}

	now := tools.Now()
	r := tools.Month(calendarMonth)
	weeks := monthWeeks(r)

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]any{
			"month": calendar.Format(r.Start, "YYYY-mm"),
			"weeks": weeks,
		})
	}

	today := 0
	if r.Contains(now) {
		today = now.Day()
	}
	if err := output.RenderMarkdown(w, monthMarkdown(r, weeks, today), 0); err != nil {
		return exitcode.General("rendering calendar", err)
	}
	return nil
}
