package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/funfan0517/MediaPublishPlatform/internal/cache"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	cacheSession  bool
	cacheDryRun   bool
	cacheKeysPage output.Limit
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage local and session storage",
	Long: `Manage the key/value storage shared by mpp commands.

Local storage persists between runs. Session storage uses the backend
configured as storage.session (memory by default), which lasts for a
single run unless a persistent backend is configured. Use --session to
target it.`,
}

var cacheSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value",
	Long:  `Store a value. Valid JSON is stored as-is; anything else is stored as a JSON string.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCacheSet,
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheGet,
}

var cacheRemoveCmd = &cobra.Command{
	Use:     "remove <key>...",
	Aliases: []string{"rm"},
	Short:   "Remove stored values",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCacheRemove,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored value in the scope",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	RunE:  runCacheKeys,
}

func init() {
	cacheCmd.PersistentFlags().BoolVar(&cacheSession, "session", false, "Use session storage instead of local storage")
	cacheClearCmd.Flags().BoolVar(&cacheDryRun, "dry-run", false, "Show what would be removed without removing it")
	cacheKeysPage.Register(cacheKeysCmd)

	cacheCmd.AddCommand(cacheSetCmd)
	cacheCmd.AddCommand(cacheGetCmd)
	cacheCmd.AddCommand(cacheRemoveCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheKeysCmd)
	rootCmd.AddCommand(cacheCmd)
}

func resetCacheFlags() {
	cacheSession = false
	cacheDryRun = false
	cacheKeysPage = output.DefaultPage()
}

func cacheStore(cmd *cobra.Command) (*cache.Store, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cfg, cmd, cacheSession)
}

// scopeLabel names the store's scope for messages: "local" or "session".
func scopeLabel(s *cache.Store) string {
	return string(s.Scope())
}

func runCacheSet(cmd *cobra.Command, args []string) error {
	store, err := cacheStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	key, raw := args[0], args[1]
	var value any = raw
	if json.Valid([]byte(raw)) {
		value = json.RawMessage(raw)
	}
	if err := store.Set(key, value); err != nil {
		return exitcode.General("storing value", err)
	}

	output.MutationSingle(cmd.OutOrStdout(), output.Green(fmt.Sprintf("Stored %s in %s storage.", key, scopeLabel(store))))
	return nil
}

func runCacheGet(cmd *cobra.Command, args []string) error {
	store, err := cacheStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	data, ok := store.GetJSON(args[0])
	if !ok {
		return exitcode.NotFoundError(fmt.Sprintf("key %q not found in %s storage", args[0], scopeLabel(store)))
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]any{"key": args[0], "value": data})
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		fmt.Fprintln(w, s)
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprintln(w, pretty.String())
	return nil
}

func runCacheRemove(cmd *cobra.Command, args []string) error {
	store, err := cacheStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var removed []output.MutationItem
	var failed []output.FailedItem
	for _, key := range args {
		if _, ok := store.Raw(key); !ok {
			failed = append(failed, output.FailedItem{Ref: key, Reason: "not found"})
			continue
		}
		if err := store.Remove(key); err != nil {
			failed = append(failed, output.FailedItem{Ref: key, Reason: err.Error()})
			continue
		}
		removed = append(removed, output.MutationItem{Ref: key})
	}

	w := cmd.OutOrStdout()
	switch {
	case len(removed) == 0 && len(failed) == 1:
		return exitcode.NotFoundError(fmt.Sprintf("key %q not found in %s storage", failed[0].Ref, scopeLabel(store)))
	case len(removed) == 0:
		output.MutationPartialFailure(w, "Removed 0 keys.", nil, failed)
		return exitcode.Generalf("no keys removed")
	case len(failed) > 0:
		output.MutationPartialFailure(w, fmt.Sprintf("Removed %d of %d keys:", len(removed), len(args)), removed, failed)
		return exitcode.Generalf("%d keys could not be removed", len(failed))
	case len(removed) == 1:
		output.MutationSingle(w, output.Green(fmt.Sprintf("Removed %s from %s storage.", removed[0].Ref, scopeLabel(store))))
	default:
		output.MutationBatch(w, output.Green(fmt.Sprintf("Removed %d keys from %s storage:", len(removed), scopeLabel(store))), removed)
	}
	return nil
}

// keyEntry is a stored key with its value size.
type keyEntry struct {
	Key  string `json:"key"`
	Size int    `json:"size"`
}

func listEntries(store *cache.Store) ([]keyEntry, error) {
	keys, err := store.Keys()
	if err != nil {
		return nil, exitcode.General("listing keys", err)
	}
	entries := make([]keyEntry, 0, len(keys))
	for _, k := range keys {
		data, _ := store.Raw(k)
		entries = append(entries, keyEntry{Key: k, Size: len(data)})
	}
	return entries, nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := cacheStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if cacheDryRun {
		entries, err := listEntries(store)
		if err != nil {
			return err
		}
		items := make([]output.MutationItem, len(entries))
		for i, e := range entries {
			items[i] = output.MutationItem{Ref: e.Key, Context: "(" + humanize.Bytes(uint64(e.Size)) + ")"}
		}
		output.MutationDryRun(w, fmt.Sprintf("Would remove %d keys from %s storage:", len(items), scopeLabel(store)), items)
		return nil
	}

	if err := store.Clear(); err != nil {
		return exitcode.General("clearing storage", err)
	}
	output.MutationSingle(w, output.Green(fmt.Sprintf("Cleared %s storage.", scopeLabel(store))))
	return nil
}

func runCacheKeys(cmd *cobra.Command, args []string) error {
	store, err := cacheStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := listEntries(store)
	if err != nil {
		return err
	}
	total := len(entries)
	entries, hidden := output.Page(entries, cacheKeysPage)

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, entries)
	}
	if total == 0 {
		fmt.Fprintf(w, "No keys in %s storage.\n", scopeLabel(store))
		return nil
	}

	var sum uint64
	lw := output.NewListWriter(w, "KEY", "SIZE")
	for _, e := range entries {
		sum += uint64(e.Size)
		lw.Row(e.Key, humanize.Bytes(uint64(e.Size)))
	}

	footer := fmt.Sprintf("Total: %d keys, %s", total, humanize.Bytes(sum))
	if hidden > 0 {
		footer = output.ShowingFooter(len(entries), total, "key")
	}
	lw.FlushWithFooter(footer)
	return nil
}
