package cmd

import (
	"fmt"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var weeknumCmd = &cobra.Command{
	Use:   "weeknum [date]",
	Short: "Show the week number of a date",
	Long: `Show the Monday-start week number of a date (default: now).

A partial first week folds into week 1. In a year that starts on a Monday
the first week is reported as week 0.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeeknum,
}

func init() {
	rootCmd.AddCommand(weeknumCmd)
}

func runWeeknum(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	loc, err := location(cfg)
	if err != nil {
		return err
	}
	t, err := dateOrNow(calendar.New(clock, loc), args, loc)
	if err != nil {
		return err
	}

	week := calendar.WeekOfYear(t)
	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]any{
			"date": output.FormatDate(t),
			"week": week,
		})
	}
	fmt.Fprintf(w, "%s  week %d\n", output.FormatDate(t), week)
	return nil
}
