package cmd

import (
	"fmt"

	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	formatTemplate string
	formatBraces   bool
)

var formatCmd = &cobra.Command{
	Use:   "format [date]",
	Short: "Format a date with a template",
	Long: `Format a date (default: now) with a template.

Template tokens replace their first occurrence only. Numeric runs are
zero-padded to their length:

  Y  year     m  month    d  day      q  quarter
  H  hour     M  minute   S  second
  W / WW / WWW    三 / 周三 / 星期三
  Q / QQQQ        一 / 第一季度
  Z / ZZZ         9 / 第9周

With --braces the template uses brace placeholders instead, replacing
every occurrence: {y} {m} {d} {h} {i} {s}, and {a} for the weekday.

Dates may be Unix timestamps (10 digits for seconds, otherwise
milliseconds), RFC 3339, or "2006-01-02 15:04:05" style text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&formatTemplate, "template", "t", "", "Template (default: config template, or the brace pattern with --braces)")
	formatCmd.Flags().BoolVar(&formatBraces, "braces", false, "Use {y}-{m}-{d} style placeholders")
	rootCmd.AddCommand(formatCmd)
}

func resetFormatFlags() {
	formatTemplate = ""
	formatBraces = false
}

// formatJSON is the JSON shape of `mpp format`.
type formatJSON struct {
	Time      string `json:"time"`
	Formatted string `json:"formatted"`
	Template  string `json:"template"`
	Quarter   int    `json:"quarter"`
	Weekday   string `json:"weekday"`
	Week      int    `json:"week"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	loc, err := location(cfg)
	if err != nil {
		return err
	}
	t, err := dateOrNow(calendar.New(clock, loc), args, loc)
	if err != nil {
		return err
	}

	var formatted, template string
	if formatBraces {
		template = formatTemplate
		if template == "" {
			template = calendar.DefaultBracePattern
		}
		formatted = calendar.FormatBraces(t, template)
	} else {
		template = templateOr(cfg, formatTemplate)
		formatted = calendar.Format(t, template)
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, formatJSON{
			Time:      t.Format("2006-01-02T15:04:05.000Z07:00"),
			Formatted: formatted,
			Template:  template,
			Quarter:   calendar.Quarter(t),
			Weekday:   calendar.WeekdayName(t),
			Week:      calendar.WeekOfYear(t),
		})
	}
	fmt.Fprintln(w, formatted)
	return nil
}
