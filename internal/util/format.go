package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatDuration renders total seconds as "M:SS". Minutes are not wrapped
// into hours, so 3723 seconds renders as "62:03".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatCurrency renders a dollar amount with two decimals, e.g. "$0.00".
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts the compact ISO-8601 duration token used by the
// catalog service ("PT1H2M3S", any component optional) into total seconds.
// Absent components default to zero.
func ParseISODuration(token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}

	m := isoDurationPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, fmt.Errorf("invalid duration token: %q", token)
	}

	var seconds int64
	for i, unit := range []int64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration component %q: %w", m[i+1], err)
		}
		seconds += v * unit
	}
	return seconds, nil
}

// Round2 rounds to two decimal places, the precision the watch-time column
// uses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
