package report

import (
	"testing"
	"time"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/pkg/errors"
)

func TestParseMonthSpec(t *testing.T) {
	spec, err := ParseMonthSpec("09/2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Month != time.September || spec.Year != 2025 {
		t.Errorf("got %v/%d, want September/2025", spec.Month, spec.Year)
	}
}

func TestParseMonthSpecInvalid(t *testing.T) {
	cases := []string{
		"13/2025",
		"00/2005",
		"09/2004", // before platform launch
		"9/2025",  // single-digit month
		"09-2025",
		"2025/09",
		"september 2025",
		"",
	}

	for _, input := range cases {
		_, err := ParseMonthSpec(input)
		if err == nil {
			t.Errorf("ParseMonthSpec(%q): expected validation error", input)
			continue
		}
		var verr *errors.ValidationError
		if !asValidation(err, &verr) {
			t.Errorf("ParseMonthSpec(%q): error is %T, want *errors.ValidationError", input, err)
		}
	}
}

func asValidation(err error, target **errors.ValidationError) bool {
	v, ok := err.(*errors.ValidationError)
	if ok {
		*target = v
	}
	return ok
}

func TestResolveLastDayOfMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		day   int
	}{
		{time.February, 2024, 29}, // leap year
		{time.February, 2025, 28},
		{time.February, 2000, 29}, // century leap year
		{time.September, 2025, 30},
		{time.December, 2025, 31},
		{time.January, 2025, 31},
	}

	for _, tc := range cases {
		rng := Resolve(domain.MonthSpec{Month: tc.month, Year: tc.year})
		if rng.Start.Day() != 1 {
			t.Errorf("%v %d: start day = %d, want 1", tc.month, tc.year, rng.Start.Day())
		}
		if rng.End.Day() != tc.day {
			t.Errorf("%v %d: end day = %d, want %d", tc.month, tc.year, rng.End.Day(), tc.day)
		}
		if rng.End.Before(rng.Start) {
			t.Errorf("%v %d: end %v before start %v", tc.month, tc.year, rng.End, rng.Start)
		}
	}
}

func TestResolveLabel(t *testing.T) {
	rng := Resolve(domain.MonthSpec{Month: time.September, Year: 2025})
	if rng.Label != "September 2025" {
		t.Errorf("label = %q, want \"September 2025\"", rng.Label)
	}
	if rng.StartDate() != "2025-09-01" {
		t.Errorf("start = %q, want 2025-09-01", rng.StartDate())
	}
	if rng.EndDate() != "2025-09-30" {
		t.Errorf("end = %q, want 2025-09-30", rng.EndDate())
	}
}

func TestMonthWindows(t *testing.T) {
	windows := MonthWindows(domain.MonthSpec{Month: time.February, Year: 2025}, 12)
	if len(windows) != 12 {
		t.Fatalf("got %d windows, want 12", len(windows))
	}

	// Oldest first, spanning the year boundary.
	if windows[0].Label != "March 2024" {
		t.Errorf("first window = %q, want \"March 2024\"", windows[0].Label)
	}
	if windows[11].Label != "February 2025" {
		t.Errorf("last window = %q, want \"February 2025\"", windows[11].Label)
	}

	// Consecutive and non-overlapping.
	for i := 1; i < len(windows); i++ {
		gap := windows[i].Start.Sub(windows[i-1].End)
		if gap != 24*time.Hour {
			t.Errorf("window %d starts %v after previous end, want 24h", i, gap)
		}
	}
}
