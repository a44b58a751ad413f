package domain

// Fetch envelopes. Every remote read returns its data together with a
// completeness flag and the errors encountered, so callers can tell "no
// data" apart from "query failed" instead of guessing from an empty
// container.

type ListingResult struct {
	Videos   []ListingEntry
	Complete bool
	Errs     []error
}

type DetailsResult struct {
	ByID     map[string]VideoDetails
	Complete bool
	Errs     []error
}

type MetricsResult struct {
	ByID     map[string]VideoMetrics
	Complete bool
	Errs     []error
}

type AggregateResult struct {
	Snapshot *AggregateSnapshot
	Complete bool
	Errs     []error
}

type TrendResult struct {
	Series   TrendSeries
	Complete bool
	Errs     []error
}
