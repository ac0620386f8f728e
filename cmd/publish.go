package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/config"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/funfan0517/MediaPublishPlatform/internal/resolve"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Submit and track publish tasks",
	Long: `Submit files to the publish backend and track the resulting tasks.

The backend address comes from api.base_url (MPP_API_URL). Platforms may be
given by type number, slug, Chinese name, or a configured alias.`,
}

// --- publish post ---

var (
	postPlatform  string
	postAccounts  []string
	postTitle     string
	postText      string
	postTags      []string
	postCategory  int
	postThumbnail string
	postImages    bool
	postDraft     bool
	postTimer     bool
	postPerDay    int
	postTimes     []string
	postStartDays int
	postDryRun    bool
)

var publishPostCmd = &cobra.Command{
	Use:   "post <file>...",
	Short: "Publish files to a platform",
	Long: `Publish one or more files to a platform for the given accounts.

With --timer the backend releases the files over several days, --per-day
at a time at the --times slots. Use --dry-run to preview the request and
the planned release times without sending anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublishPost,
}

// --- publish cancel ---

var publishCancelCmd = &cobra.Command{
	Use:   "cancel <task-id>...",
	Short: "Cancel pending or running publish tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPublishCancel,
}

func init() {
	f := publishPostCmd.Flags()
	f.StringVarP(&postPlatform, "platform", "p", "", "Target platform (type, slug, name or alias)")
	f.StringSliceVarP(&postAccounts, "account", "a", nil, "Account cookie file (repeatable)")
	f.StringVar(&postTitle, "title", "", "Post title")
	f.StringVar(&postText, "text", "", "Post body text")
	f.StringSliceVar(&postTags, "tags", nil, "Tags, comma-separated")
	f.IntVar(&postCategory, "category", 0, "Content category (0-6)")
	f.StringVar(&postThumbnail, "thumbnail", "", "Thumbnail file")
	f.BoolVar(&postImages, "images", false, "Files are images rather than videos")
	f.BoolVar(&postDraft, "draft", false, "Save as a draft instead of publishing")
	f.BoolVar(&postTimer, "timer", false, "Release files on a schedule")
	f.IntVar(&postPerDay, "per-day", 1, "Files released per day with --timer")
	f.StringSliceVar(&postTimes, "times", nil, "Daily HH:MM release slots with --timer")
	f.IntVar(&postStartDays, "start-days", 0, "Days until the first release with --timer")
	f.BoolVar(&postDryRun, "dry-run", false, "Show what would be sent without sending it")
	_ = publishPostCmd.MarkFlagRequired("platform")
	_ = publishPostCmd.MarkFlagRequired("account")

	publishCmd.AddCommand(publishPostCmd)
	publishCmd.AddCommand(publishCancelCmd)
	rootCmd.AddCommand(publishCmd)
}

func resetPublishPostFlags() {
	postPlatform = ""
	postAccounts = nil
	postTitle = ""
	postText = ""
	postTags = nil
	postCategory = 0
	postThumbnail = ""
	postImages = false
	postDraft = false
	postTimer = false
	postPerDay = 1
	postTimes = nil
	postStartDays = 0
	postDryRun = false
}

// buildPostRequest assembles the request from flags for platform p.
func buildPostRequest(p resolve.Platform, files []string) api.PostVideoRequest {
	req := api.PostVideoRequest{
		Type:        p.Type,
		AccountList: postAccounts,
		FileType:    api.FileTypeVideo,
		FileList:    files,
		Title:       postTitle,
		Text:        postText,
		Tags:        postTags,
		Category:    postCategory,
		Thumbnail:   postThumbnail,
		IsDraft:     postDraft,
		StartDays:   postStartDays,
	}
	if postImages {
		req.FileType = api.FileTypeImage
	}
	if postTimer {
		req.EnableTimer = 1
		req.VideosPerDay = postPerDay
		req.DailyTimes = postTimes
	}
	return req
}

func runPublishPost(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	p, err := resolve.ResolvePlatform(postPlatform, cfg.Aliases.Platforms)
	if err != nil {
		return err
	}

	req := buildPostRequest(p, args)
	if err := req.Validate(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if postDryRun {
		details, err := postDryRunDetails(cfg, p, req)
		if err != nil {
			return err
		}
		output.MutationDryRunDetail(w, fmt.Sprintf("Would publish %s to %s.", plural(len(req.FileList), "file"), p.Name), details)
		return nil
	}

	client := newClient(cfg, cmd)
	if err := client.PostVideo(req); err != nil {
		return err
	}

	if output.IsJSON(outputFormat) {
		return output.JSON(w, map[string]any{
			"platform": p,
			"request":  req,
			"status":   "submitted",
		})
	}
	output.MutationSingle(w, output.Green(fmt.Sprintf("Submitted %s to %s for %s.",
		plural(len(req.FileList), "file"), p.Name, plural(len(req.AccountList), "account"))))
	return nil
}

// postDryRunDetails describes req, including the planned release times
// when the timer is on.
func postDryRunDetails(cfg *config.Config, p resolve.Platform, req api.PostVideoRequest) ([]output.DetailLine, error) {
	details := []output.DetailLine{
		{Key: "Platform", Value: p.String()},
		{Key: "Accounts", Value: strings.Join(baseNames(req.AccountList), ", ")},
		{Key: "Files", Value: strings.Join(baseNames(req.FileList), ", ")},
	}
	if req.Title != "" {
		details = append(details, output.DetailLine{Key: "Title", Value: req.Title})
	}
	if len(req.Tags) > 0 {
		details = append(details, output.DetailLine{Key: "Tags", Value: "#" + strings.Join(req.Tags, " #")})
	}
	if req.IsDraft {
		details = append(details, output.DetailLine{Key: "Draft", Value: "yes"})
	}
	if req.EnableTimer == 0 {
		details = append(details, output.DetailLine{Key: "Schedule", Value: "immediately"})
		return details, nil
	}

	tools, err := newTools(cfg, "")
	if err != nil {
		return nil, err
	}
	plan, err := planSchedule(tools, len(req.FileList), req.VideosPerDay, req.DailyTimes, req.StartDays)
	if err != nil {
		return nil, err
	}
	for i, t := range plan {
		details = append(details, output.DetailLine{
			Key:   fmt.Sprintf("Release %d", i+1),
			Value: output.FormatDateTime(t, "YYYY-mm-dd HH:MM WW"),
		})
	}
	return details, nil
}

func runPublishCancel(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg, cmd)

	var cancelled []output.MutationItem
	var failed []output.FailedItem
	for _, id := range args {
		if err := client.CancelTask(id); err != nil {
			if len(args) == 1 {
				return err
			}
			failed = append(failed, output.FailedItem{Ref: id, Reason: err.Error()})
			continue
		}
		cancelled = append(cancelled, output.MutationItem{Ref: id})
	}

	w := cmd.OutOrStdout()
	switch {
	case len(failed) > 0:
		output.MutationPartialFailure(w, fmt.Sprintf("Cancelled %d of %d tasks:", len(cancelled), len(args)), cancelled, failed)
		return exitcode.Generalf("%d tasks could not be cancelled", len(failed))
	case len(cancelled) == 1:
		output.MutationSingle(w, output.Green(fmt.Sprintf("Cancelled task %s.", cancelled[0].Ref)))
	default:
		output.MutationBatch(w, output.Green(fmt.Sprintf("Cancelled %d tasks:", len(cancelled))), cancelled)
	}
	return nil
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// plural formats n with noun, adding "s" unless n is 1.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
