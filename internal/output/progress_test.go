package output

import "testing"

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name  string
		done  int64
		total int64
		verb  string
		want  string
	}{
		{
			"partial",
			34, 52, "",
			"34/52 completed (65%)  █████████████░░░░░░░",
		},
		{
			"complete",
			10, 10, "published",
			"10/10 published (100%)  ████████████████████",
		},
		{
			"zero progress",
			0, 20, "",
			"0/20 completed (0%)  ░░░░░░░░░░░░░░░░░░░░",
		},
		{
			"zero total",
			0, 0, "",
			"0/0 completed (0%)  ░░░░░░░░░░░░░░░░░░░░",
		},
		{
			"thousands",
			1180, 1204, "published",
			"1,180/1,204 published (98%)  ███████████████████░",
		},
		{
			"overflow is capped",
			30, 20, "",
			"30/20 completed (150%)  ████████████████████",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatProgress(tt.done, tt.total, tt.verb)
			if got != tt.want {
				t.Errorf("FormatProgress(%d, %d) =\n  %q\nwant\n  %q", tt.done, tt.total, got, tt.want)
			}
		})
	}
}
