package domain

import "time"

// MonthSpec identifies a single reporting month. Year is lower-bounded by
// the platform launch year (2005); validation happens at parse time.
type MonthSpec struct {
	Month time.Month
	Year  int
}

// DateRange is an inclusive calendar window with a human-readable label,
// e.g. {2025-09-01, 2025-09-30, "September 2025"}. Immutable once resolved.
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

// StartDate returns the range start formatted as YYYY-MM-DD, the form the
// analytics service expects.
func (r DateRange) StartDate() string {
	return r.Start.Format("2006-01-02")
}

// EndDate returns the range end formatted as YYYY-MM-DD.
func (r DateRange) EndDate() string {
	return r.End.Format("2006-01-02")
}
