package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/funfan0517/MediaPublishPlatform/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	platformRefresh     bool
	platformInteractive bool
)

var publishPlatformCmd = &cobra.Command{
	Use:   "platform [platform]",
	Short: "Show a platform's backend configuration",
	Long: `Show a platform's login and creator URLs and the features its uploader
supports. The configuration is kept in local storage; use --refresh to
fetch it again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublishPlatform,
}

var publishPlatformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List publish platforms",
	Args:  cobra.NoArgs,
	RunE:  runPublishPlatforms,
}

func init() {
	publishPlatformCmd.Flags().BoolVar(&platformRefresh, "refresh", false, "Fetch from the backend even when stored")
	publishPlatformCmd.Flags().BoolVarP(&platformInteractive, "interactive", "i", false, "Pick a platform from a list")
	publishCmd.AddCommand(publishPlatformCmd)
	publishCmd.AddCommand(publishPlatformsCmd)
}

func resetPublishPlatformFlags() {
	platformRefresh = false
	platformInteractive = false
}

func platformItems() ([]selectItem, error) {
	var items []selectItem
	for _, p := range resolve.Platforms() {
		items = append(items, selectItem{
			id:          strconv.Itoa(p.Type),
			title:       p.Name,
			description: fmt.Sprintf("type %d, %s", p.Type, p.Slug),
		})
	}
	return items, nil
}

func runPublishPlatform(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	identifier, err := interactiveOrArg(cmd, args, platformInteractive, platformItems, "Select a platform")
	if err != nil {
		return err
	}
	p, err := resolve.ResolvePlatform(identifier, cfg.Aliases.Platforms)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, cmd, false)
	if err != nil {
		return err
	}
	defer store.Close()

	client := newClient(cfg, cmd)
	var pc *api.PlatformConfig
	if platformRefresh {
		pc, err = resolve.FetchPlatformConfig(client, store, p)
	} else {
		pc, err = resolve.PlatformConfig(client, store, p)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, pc)
	}
	renderPlatformConfig(w, p, pc)
	return nil
}

func renderPlatformConfig(w io.Writer, p resolve.Platform, pc *api.PlatformConfig) {
	d := output.NewDetailWriter(w, "PLATFORM", fmt.Sprintf("%s (%s)", p.Name, p.Slug))
	d.Fields([]output.KeyValue{
		output.KV("Type", strconv.Itoa(pc.Type)),
		output.KV("Personal", orDetailMissing(pc.PersonalURL)),
		output.KV("Login", orDetailMissing(pc.LoginURL)),
		output.KV("Video upload", orDetailMissing(pc.CreatorVideoURL)),
		output.KV("Image upload", orDetailMissing(pc.CreatorImageURL)),
	})

	d.Section("FEATURES")
	f := pc.Features
	lw := output.NewListWriter(w, "FEATURE", "SUPPORTED")
	for _, row := range []struct {
		name string
		ok   bool
	}{
		{"image publish", f.ImagePublish},
		{"title", f.Title},
		{"text", f.Textbox},
		{"tags", f.Tags},
		{"thumbnail", f.Thumbnail},
		{"location", f.Location},
		{"schedule", f.Schedule},
	} {
		lw.Row(row.name, yesNo(row.ok))
	}
	lw.Flush()
}

func runPublishPlatforms(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	aliases := map[int][]string{}
	for alias, target := range cfg.Aliases.Platforms {
		if p, err := resolve.ResolvePlatform(target, nil); err == nil {
			aliases[p.Type] = append(aliases[p.Type], alias)
		}
	}

	platforms := resolve.Platforms()
	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, platforms)
	}

	lw := output.NewListWriter(w, "TYPE", "SLUG", "NAME", "ALIASES")
	for _, p := range platforms {
		names := aliases[p.Type]
		sort.Strings(names)
		alias := output.TableMissing
		if len(names) > 0 {
			alias = strings.Join(names, ", ")
		}
		lw.Row(strconv.Itoa(p.Type), p.Slug, p.Name, alias)
	}
	lw.FlushWithFooter(fmt.Sprintf("Total: %d platforms", len(platforms)))
	return nil
}

func orDetailMissing(s string) string {
	if s == "" {
		return output.DetailMissing
	}
	return s
}

func yesNo(ok bool) string {
	if ok {
		return output.Green("yes")
	}
	return output.Dim("no")
}
