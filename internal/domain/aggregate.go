package domain

// TrendKind names the two aggregate query flavors used by the trends tab.
type TrendKind string

const (
	TrendNewVideos   TrendKind = "new-videos"
	TrendBackCatalog TrendKind = "back-catalog"
)

// AggregateSnapshot is a single-row (dimension-less) analytics result for
// one calendar month. Revenue is nil when the monetization identity is
// unavailable.
type AggregateSnapshot struct {
	PeriodLabel            string
	Views                  int64
	WatchMinutes           int64
	SubscribersGained      int64
	Revenue                *float64
	AvgViewDurationSeconds float64
}

// TrendPoint pairs a month window with its snapshot. A nil snapshot means
// the query yielded no data (or failed), which callers must not conflate
// with a zero-valued month.
type TrendPoint struct {
	Period   DateRange
	Snapshot *AggregateSnapshot
}

// TrendSeries is a fixed-length, chronologically ascending sequence of
// monthly aggregate points.
type TrendSeries struct {
	Kind   TrendKind
	Points []TrendPoint
}

// HasRevenue reports whether any point in the series carries a revenue
// value. The trends tab only emits revenue columns when it does.
func (s TrendSeries) HasRevenue() bool {
	for _, p := range s.Points {
		if p.Snapshot != nil && p.Snapshot.Revenue != nil {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no point in the series carries data.
func (s TrendSeries) IsEmpty() bool {
	for _, p := range s.Points {
		if p.Snapshot != nil {
			return false
		}
	}
	return true
}
