package cmd

import "github.com/spf13/cobra"

// This file registers dynamic shell completions for all commands.
// It uses a single init() to wire up ValidArgsFunction on commands that
// take identifiers as positional args, and RegisterFlagCompletionFunc
// on flags that accept them.

func init() {
	// --- ValidArgsFunction for positional arguments ---

	publishPlatformCmd.ValidArgsFunction = completePlatformNames
	rangeShortcutCmd.ValidArgsFunction = completeShortcutNames

	cacheGetCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeStoredKeys(cmd, args, toComplete)
	}
	cacheRemoveCmd.ValidArgsFunction = completeStoredKeys

	// --- RegisterFlagCompletionFunc for flags ---

	_ = rootCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	registerFlagCompletion(publishPostCmd, "platform", completePlatformNames)
	registerFlagCompletion(setupCmd, "storage", completeStorageKinds)
}

// registerFlagCompletion is a helper that registers a flag completion function,
// silently ignoring errors (e.g. if the flag doesn't exist).
func registerFlagCompletion(cmd *cobra.Command, flag string, fn func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)) {
	_ = cmd.RegisterFlagCompletionFunc(flag, fn)
}
