package cmd

import (
	"strings"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	outputFormat string
	timezone     string
)

var rootCmd = &cobra.Command{
	Use:   "mpp",
	Short: "Media publish platform toolbox",
	Long: `mpp is the command-line companion to the media publish platform. It computes
date ranges, formats timestamps, plans publishing schedules, manages local
storage, and talks to the publish backend.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupPersistentPreRun,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (log API requests and storage access to stderr)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "IANA time zone for date math (default: config timezone, then local)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// Cobra's built-in validators (ExactArgs, MinimumNArgs, etc.) and
		// flag parsing errors return plain errors. Wrap them as usage errors
		// so they exit with code 2.
		if _, ok := err.(*exitcode.Error); !ok && isCobraUsageError(err) {
			return exitcode.Usage(err.Error())
		}
	}
	return err
}

// isCobraUsageError returns true if the error looks like a Cobra argument
// validation or flag parsing error.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "arg(s)") ||
		strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "invalid argument")
}

// setupPersistentPreRun is installed as PersistentPreRunE on the root command.
// It rejects bad global flags before any subcommand runs.
func setupPersistentPreRun(cmd *cobra.Command, args []string) error {
	if outputFormat != "" && !output.IsJSON(outputFormat) {
		return exitcode.Usagef("unsupported output format %q (only json is supported)", outputFormat)
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return exitcode.BadInput("invalid --tz", err)
		}
	}
	return nil
}

// runRoot is the RunE for the bare `mpp` command.
// On first run (no config file) in a terminal, it launches the setup wizard.
// Otherwise, it shows help.
func runRoot(cmd *cobra.Command, args []string) error {
	if needsSetup() && isInteractive() {
		cmd.PrintErrln("Welcome to mpp! Let's get you set up.")
		return runSetup(cmd, nil)
	}
	return cmd.Help()
}
