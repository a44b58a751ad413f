package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/pkg/errors"
)

// minYear is the platform launch year; no channel has data before it.
const minYear = 2005

var monthSpecPattern = regexp.MustCompile(`^(\d{2})/(\d{4})$`)

// ParseMonthSpec parses a "MM/YYYY" month specifier. The format is strict:
// two-digit month, four-digit year, month 1..12, year >= 2005.
func ParseMonthSpec(s string) (domain.MonthSpec, error) {
	m := monthSpecPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return domain.MonthSpec{}, errors.NewValidationError("month must be in MM/YYYY format (e.g. 09/2025)", "month", s)
	}

	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return domain.MonthSpec{}, errors.NewValidationError("month must be between 01 and 12", "month", s)
	}
	year, err := strconv.Atoi(m[2])
	if err != nil || year < minYear {
		return domain.MonthSpec{}, errors.NewValidationError(fmt.Sprintf("year must be %d or later", minYear), "month", s)
	}

	return domain.MonthSpec{Month: time.Month(month), Year: year}, nil
}

// Resolve converts a month spec into its inclusive calendar range. The end
// date is the last day of the month; AddDate handles leap-year February.
func Resolve(spec domain.MonthSpec) domain.DateRange {
	start := time.Date(spec.Year, spec.Month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return domain.DateRange{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s %d", spec.Month.String(), spec.Year),
	}
}

// MonthWindows returns n consecutive, non-overlapping calendar-month ranges
// ending at the given month, oldest first.
func MonthWindows(end domain.MonthSpec, n int) []domain.DateRange {
	windows := make([]domain.DateRange, 0, n)
	last := time.Date(end.Year, end.Month, 1, 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		first := last.AddDate(0, -i, 0)
		windows = append(windows, Resolve(domain.MonthSpec{Month: first.Month(), Year: first.Year()}))
	}
	return windows
}
