package cmd

import (
	"strconv"

	"github.com/funfan0517/MediaPublishPlatform/internal/cache"
	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/config"
	"github.com/funfan0517/MediaPublishPlatform/internal/resolve"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// completePlatformNames returns platform slugs, type numbers and configured
// aliases for shell completion.
func completePlatformNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() == "platform" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, p := range resolve.Platforms() {
		names = append(names, p.Slug+"\t"+p.Name, strconv.Itoa(p.Type)+"\t"+p.Name)
	}
	if cfg := completionConfig(); cfg != nil {
		for alias := range cfg.Aliases.Platforms {
			names = append(names, alias)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeShortcutNames returns the range shortcuts with their labels.
func completeShortcutNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, sc := range calendar.Shortcuts() {
		names = append(names, string(sc)+"\t"+sc.Label())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeStoredKeys returns the keys in the scope selected by --session.
func completeStoredKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := completionConfig()
	if cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	scope := cache.Local
	if session, _ := cmd.Flags().GetBool("session"); session {
		scope = cache.Session
	}
	store, err := cache.Open(scope, cfg.Storage, zap.NewNop())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer store.Close()

	keys, err := store.Keys()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// completeStorageKinds returns the storage backends setup can configure.
func completeStorageKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{cache.KindFile, cache.KindSQLite, cache.KindMemory}, cobra.ShellCompDirectiveNoFileComp
}

// completeOutputFormats returns valid --output values.
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveNoFileComp
}

// completionConfig loads config for completion, returning nil on error.
func completionConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	return cfg
}
