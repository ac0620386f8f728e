package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	scheduleCount     int
	schedulePerDay    int
	scheduleTimes     []string
	scheduleStartDays int
	scheduleTemplate  string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Plan timed publishing slots",
	Long: `Plan when timed publishing would release each item.

Each day takes the first --per-day slots of --times, starting --start-days
days from today. Without --times the slots are 09:00, 12:00, 15:00, 18:00
and 21:00.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().IntVarP(&scheduleCount, "count", "n", 0, "Number of items to publish")
	scheduleCmd.Flags().IntVar(&schedulePerDay, "per-day", 1, "Items published per day")
	scheduleCmd.Flags().StringSliceVar(&scheduleTimes, "times", nil, "Daily HH:MM slots, comma-separated")
	scheduleCmd.Flags().IntVar(&scheduleStartDays, "start-days", 0, "Days from today until the first publish day")
	scheduleCmd.Flags().StringVarP(&scheduleTemplate, "template", "t", "", "Output template (default: YYYY-mm-dd HH:MM)")
	_ = scheduleCmd.MarkFlagRequired("count")
	rootCmd.AddCommand(scheduleCmd)
}

func resetScheduleFlags() {
	scheduleCount = 0
	schedulePerDay = 1
	scheduleTimes = nil
	scheduleStartDays = 0
	scheduleTemplate = ""
}

// validateSlots rejects slots that are not HH:MM.
func validateSlots(slots []string) error {
	for _, s := range slots {
		if _, _, ok := calendar.ParseClock(s); !ok {
			return exitcode.Usagef("invalid publish time %q: expected HH:MM", s)
		}
	}
	return nil
}

// planSchedule validates the flags and computes the slots.
func planSchedule(tools *calendar.Tools, count, perDay int, times []string, startDays int) ([]time.Time, error) {
	if count <= 0 {
		return nil, exitcode.Usage("--count must be positive")
	}
	if perDay <= 0 {
		return nil, exitcode.Usage("--per-day must be positive")
	}
	if startDays < 0 {
		return nil, exitcode.Usage("--start-days must not be negative")
	}
	if err := validateSlots(times); err != nil {
		return nil, err
	}
	plan, err := tools.Schedule(count, perDay, times, startDays)
	if err != nil {
		return nil, exitcode.BadInput("planning schedule", err)
	}
	return plan, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	tools, err := newTools(cfg, "")
	if err != nil {
		return err
	}
	plan, err := planSchedule(tools, scheduleCount, schedulePerDay, scheduleTimes, scheduleStartDays)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, plan)
	}

	template := scheduleTemplate
	if template == "" {
		template = "YYYY-mm-dd HH:MM"
	}
	lw := output.NewListWriter(w, "#", "TIME", "WEEKDAY", "WEEK")
	for i, t := range plan {
		lw.Row(strconv.Itoa(i+1), calendar.Format(t, template), calendar.Format(t, "WW"), strconv.Itoa(calendar.WeekOfYear(t)))
	}

	footer := fmt.Sprintf("Total: %d items", len(plan))
	if len(plan) > 0 {
		footer += " over " + output.FormatDateRange(plan[0], plan[len(plan)-1])
	}
	lw.FlushWithFooter(footer)
	return nil
}
