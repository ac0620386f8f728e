package cmd

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/debounce"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	statusWatch    bool
	statusInterval time.Duration
	statusPage     output.Limit
)

// watchRedrawDelay is how long progress must stay unchanged before the
// watch line is redrawn.
var watchRedrawDelay = 300 * time.Millisecond

// Task states reported by the backend.
const (
	taskPending   = "待发布"
	taskRunning   = "发布中"
	taskSucceeded = "发布成功"
	taskFailed    = "发布失败"
	taskCancelled = "已取消"
)

var publishStatusCmd = &cobra.Command{
	Use:   "status <task-id>",
	Short: "Show the progress of a publish task",
	Long: `Show the progress of a publish task and its per-file records.

With --watch the task is polled every --interval until it finishes, printing
progress to stderr as it changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublishStatus,
}

func init() {
	publishStatusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Poll until the task finishes")
	publishStatusCmd.Flags().DurationVar(&statusInterval, "interval", 2*time.Second, "Polling interval with --watch")
	statusPage.Register(publishStatusCmd)
	publishCmd.AddCommand(publishStatusCmd)
}

func resetPublishStatusFlags() {
	statusWatch = false
	statusInterval = 2 * time.Second
	statusPage = output.DefaultPage()
}

// taskDone reports whether the task will not change any more.
func taskDone(st *api.TaskStatus) bool {
	switch st.Status {
	case taskSucceeded, taskFailed, taskCancelled:
		return true
	case taskPending, taskRunning:
		return false
	}
	return st.Total > 0 && st.Finished+st.Failed >= st.Total
}

func runPublishStatus(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	loc, err := location(cfg)
	if err != nil {
		return err
	}
	client := newClient(cfg, cmd)

	var st *api.TaskStatus
	if statusWatch {
		if statusInterval <= 0 {
			return exitcode.Usage("--interval must be positive")
		}
		st, err = watchTask(cmd, client, args[0])
	} else {
		st, err = client.TaskStatus(args[0])
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, st)
	}
	renderTaskStatus(w, st, calendar.New(clock, loc))
	return nil
}

// lockedWriter serializes writes from the redraw timer and the poll loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// watchTask polls the task until it is done. Bursts of progress changes
// collapse into one redraw; the final state is always drawn.
func watchTask(cmd *cobra.Command, client *api.Client, id string) (*api.TaskStatus, error) {
	progress := &lockedWriter{w: cmd.ErrOrStderr()}
	redraw := debounce.New(watchRedrawDelay)
	defer redraw.Stop()

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	var last string
	for {
		st, err := client.TaskStatus(id)
		if err != nil {
			return nil, err
		}
		line := fmt.Sprintf("%s  %s  %s\n", id, st.Status, output.FormatProgress(st.Finished, st.Total, "published"))
		if line != last {
			last = line
			redraw.Trigger(func() { _, _ = io.WriteString(progress, line) })
		}
		if taskDone(st) {
			redraw.Flush()
			return st, nil
		}

		select {
		case <-cmd.Context().Done():
			redraw.Flush()
			return nil, exitcode.General("watching task", cmd.Context().Err())
		case <-ticker.C:
		}
	}
}

// renderTaskStatus writes the detail view of a task.
func renderTaskStatus(w io.Writer, st *api.TaskStatus, tools *calendar.Tools) {
	d := output.NewDetailWriter(w, "TASK", st.TaskID)
	d.Fields([]output.KeyValue{
		output.KV("Status", colorStatus(st.Status)),
		output.KV("Progress", output.FormatProgress(st.Finished, st.Total, "published")),
		output.KV("Failed", strconv.FormatInt(st.Failed, 10)),
	})

	if len(st.Records) == 0 {
		return
	}

	d.Section("RECORDS")
	records, hidden := output.Page(st.Records, statusPage)
	lw := output.NewListWriter(w, "FILE", "ACCOUNT", "PLATFORM", "STATUS", "UPDATED", "ERROR")
	for _, r := range records {
		lw.Row(
			r.FileName,
			accountLabel(r),
			r.PlatformName,
			colorStatus(r.Status),
			relativeTime(tools, r.UpdateTime),
			output.OrMissing(r.ErrorMsg, output.TableMissing),
		)
	}

	footer := ""
	if hidden > 0 {
		footer = output.ShowingFooter(len(records), len(st.Records), "record")
	}
	lw.FlushWithFooter(footer)
}

func accountLabel(r api.TaskRecord) string {
	if r.AccountName != "" {
		return r.AccountName
	}
	return r.AccountID
}

// relativeTime phrases a backend timestamp with Past, or returns it
// unchanged when it does not parse.
func relativeTime(tools *calendar.Tools, s string) string {
	if s == "" {
		return output.TableMissing
	}
	t, err := calendar.ParseInstant(s, tools.Location)
	if err != nil {
		return s
	}
	return tools.Past(t, "YYYY-mm-dd HH:MM")
}

func colorStatus(status string) string {
	switch status {
	case taskSucceeded:
		return output.Green(status)
	case taskFailed:
		return output.Red(status)
	case taskRunning, taskPending:
		return output.Yellow(status)
	}
	return status
}
