package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseInstant(t *testing.T) {
	want := time.Date(2023, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"unix seconds", "1678025229", want},
		{"unix milliseconds", "1678025229000", want},
		{"unix milliseconds with fraction", "1678025229123", want.Add(123 * time.Millisecond)},
		{"datetime", "2023-03-05 14:07:09", want},
		{"slashes", "2023/03/05 14:07:09", want},
		{"iso without zone", "2023-03-05T14:07:09", want},
		{"iso with zone", "2023-03-05T22:07:09+08:00", want},
		{"fractional seconds", "2023-03-05 14:07:09.250", want.Add(250 * time.Millisecond)},
		{"minutes only", "2023-03-05 14:07", want.Add(-9 * time.Second)},
		{"date only", "2023-03-05", time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{"date with slashes", "2023/03/05", time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{"surrounding space", "  2023-03-05  ", time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input, time.UTC)
			if err != nil {
				t.Fatalf("ParseInstant(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseInstant(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseInstant(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestParseInstantInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2023-13-45", "12:30", "2023-03-05 25:00:00"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseInstant(input, time.UTC)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParseInstant(%q) error = %v, want ErrInvalidDate", input, err)
			}
		})
	}
}

func TestParseInstantLocalDefault(t *testing.T) {
	got, err := ParseInstant("2023-03-05", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Location() != time.Local {
		t.Errorf("location = %v, want time.Local", got.Location())
	}
}

func TestParseInstantDateOnlyIsLocalMidnight(t *testing.T) {
	for _, loc := range []*time.Location{
		time.FixedZone("CST", 8*3600),
		time.FixedZone("EST", -5*3600),
	} {
		got, err := ParseInstant("2023-03-05", loc)
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2023, time.March, 5, 0, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("ParseInstant in %s = %v, want %v", loc, got, want)
		}
		if got.Day() != 5 {
			t.Errorf("ParseInstant in %s day = %d, want 5", loc, got.Day())
		}
	}
}
