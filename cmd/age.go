package cmd

import (
	"fmt"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var ageOn string

var ageCmd = &cobra.Command{
	Use:   "age <birthday>",
	Short: "Describe an age in years, months or days",
	Args:  cobra.ExactArgs(1),
	RunE:  runAge,
}

func init() {
	ageCmd.Flags().StringVar(&ageOn, "on", "", "Measure the age on this date (default: today)")
	rootCmd.AddCommand(ageCmd)
}

func resetAgeFlags() {
	ageOn = ""
}

func runAge(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	loc, err := location(cfg)
	if err != nil {
		return err
	}
	birth, err := parseDate(args[0], loc)
	if err != nil {
		return err
	}
	on := calendar.New(clock, loc).Now()
	if ageOn != "" {
		if on, err = parseDate(ageOn, loc); err != nil {
			return err
		}
	}
	if on.Before(birth) {
		return exitcode.Usagef("birthday %s is after %s", output.FormatDate(birth), output.FormatDate(on))
	}

	age := calendar.Age(birth, on)
	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]string{
			"birthday": output.FormatDate(birth),
			"on":       output.FormatDate(on),
			"age":      age,
		})
	}
	fmt.Fprintln(w, age)
	return nil
}
