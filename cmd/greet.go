package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var greetCmd = &cobra.Command{
	Use:   "greet [date]",
	Short: "Print the time-of-day greeting",
	Long:  `Print the greeting for a time of day (default: now), e.g. 早上好 or 晚上好.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGreet,
}

var greetStyle = lipgloss.NewStyle().Bold(true)

func init() {
	rootCmd.AddCommand(greetCmd)
}

func runGreet(cmd *cobra.Command, args []string) error {
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

	greeting := calendar.Greeting(t)
	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]any{
			"time":     t,
			"greeting": greeting,
		})
	}
	fmt.Fprintf(w, "%s  %s\n", greetStyle.Render(greeting), output.Dim(calendar.Format(t, "YYYY-mm-dd HH:MM WW")))
	return nil
}
