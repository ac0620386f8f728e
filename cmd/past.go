package cmd

import (
	"fmt"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var pastTemplate string

var pastCmd = &cobra.Command{
	Use:   "past <date>",
	Short: "Describe how long ago a date was",
	Long: `Describe how long ago a date was: 刚刚, N秒前, N分钟前, N小时前 or N天前.
Dates three or more days back are formatted with --template instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPast,
}

func init() {
	pastCmd.Flags().StringVarP(&pastTemplate, "template", "t", "", "Template for older dates (default: config template)")
	rootCmd.AddCommand(pastCmd)
}

func resetPastFlags() {
	pastTemplate = ""
}

func runPast(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	loc, err := location(cfg)
	if err != nil {
		return err
	}
	ts, err := parseDate(args[0], loc)
	if err != nil {
		return err
	}

	tools := calendar.New(clock, loc)
	phrase := tools.Past(ts, templateOr(cfg, pastTemplate))

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]any{
			"time":    ts,
			"now":     tools.Now(),
			"seconds": int64(tools.Now().Sub(ts).Seconds()),
			"past":    phrase,
		})
	}
	fmt.Fprintln(w, phrase)
	return nil
}
