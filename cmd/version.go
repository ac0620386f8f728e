package cmd

import (
	"fmt"

	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

// Build variables, set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if output.IsJSON(outputFormat) {
			return output.JSON(w, map[string]string{
				"version": Version,
				"commit":  Commit,
				"built":   Date,
			})
		}
		fmt.Fprintf(w, "mpp version %s\n", Version)
		fmt.Fprintf(w, "commit: %s\n", Commit)
		fmt.Fprintf(w, "built:  %s\n", Date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
