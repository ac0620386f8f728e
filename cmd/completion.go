package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionInstallHelp bool

// completionCmd groups the script generators. Completions cover platform
// names and aliases, range shortcuts and stored cache keys as well as
// commands and flags.
var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for bash, zsh, fish or PowerShell.

Besides commands and flags, the scripts complete platform slugs and
aliases (publish post -p, publish platform), range shortcuts (range
shortcut) and stored keys (cache get, cache remove).

Installing:

  bash   mpp completion bash > /etc/bash_completion.d/mpp
         (macOS: > $(brew --prefix)/etc/bash_completion.d/mpp)
  zsh    mpp completion zsh > "${fpath[1]}/_mpp"
         (needs "autoload -U compinit; compinit" in ~/.zshrc)
  fish   mpp completion fish > ~/.config/fish/completions/mpp.fish
  pwsh   mpp completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if completionInstallHelp {
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return nil
		}
		return cmd.Help()
	},
}

// shellCompletion builds the subcommand for one shell.
func shellCompletion(shell string, gen func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   shell,
		Short: fmt.Sprintf("Generate the %s completion script", shell),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen(cmd)
		},
	}
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstallHelp, "help-install", false, "Show installation instructions")

	completionCmd.AddCommand(
		shellCompletion("bash", func(cmd *cobra.Command) error {
			return rootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
		}),
		shellCompletion("zsh", func(cmd *cobra.Command) error {
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		}),
		shellCompletion("fish", func(cmd *cobra.Command) error {
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		}),
		shellCompletion("powershell", func(cmd *cobra.Command) error {
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}),
	)
	rootCmd.AddCommand(completionCmd)
}

func resetCompletionFlags() {
	completionInstallHelp = false
}
