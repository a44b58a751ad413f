package analytics

import (
	"google.golang.org/api/youtubeanalytics/v2"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/pkg/errors"
)

// The analytics service answers with positional rows described by column
// headers. Decoding resolves every cell through the header index and fails
// with a SchemaError on any mismatch, instead of trusting positions.

func columnIndex(resp *youtubeanalytics.QueryResponse) map[string]int {
	cols := make(map[string]int, len(resp.ColumnHeaders))
	for i, h := range resp.ColumnHeaders {
		if h != nil {
			cols[h.Name] = i
		}
	}
	return cols
}

// rowReader reads named cells out of one positional row, accumulating the
// first schema violation it hits.
type rowReader struct {
	cols map[string]int
	row  []any
	err  error
}

func (r *rowReader) float(name string) float64 {
	if r.err != nil {
		return 0
	}
	idx, ok := r.cols[name]
	if !ok || idx >= len(r.row) {
		r.err = errors.NewSchemaError("metric column missing from response", name, nil)
		return 0
	}
	v, ok := r.row[idx].(float64)
	if !ok {
		r.err = errors.NewSchemaError("metric cell is not numeric", name, nil)
		return 0
	}
	return v
}

// optionalFloat reads a metric that may legitimately be absent from the
// response (revenue without a monetization identity).
func (r *rowReader) optionalFloat(name string) *float64 {
	if r.err != nil {
		return nil
	}
	idx, ok := r.cols[name]
	if !ok {
		return nil
	}
	if idx >= len(r.row) {
		r.err = errors.NewSchemaError("metric column missing from row", name, nil)
		return nil
	}
	v, ok := r.row[idx].(float64)
	if !ok {
		r.err = errors.NewSchemaError("metric cell is not numeric", name, nil)
		return nil
	}
	return &v
}

func (r *rowReader) str(name string) string {
	if r.err != nil {
		return ""
	}
	idx, ok := r.cols[name]
	if !ok || idx >= len(r.row) {
		r.err = errors.NewSchemaError("dimension column missing from response", name, nil)
		return ""
	}
	v, ok := r.row[idx].(string)
	if !ok {
		r.err = errors.NewSchemaError("dimension cell is not a string", name, nil)
		return ""
	}
	return v
}

func (r *rowReader) snapshot() *domain.AggregateSnapshot {
	return &domain.AggregateSnapshot{
		Views:                  int64(r.float(metricViews)),
		WatchMinutes:           int64(r.float(metricWatchMinutes)),
		SubscribersGained:      int64(r.float(metricSubscribers)),
		Revenue:                r.optionalFloat(metricRevenue),
		AvgViewDurationSeconds: r.float(metricAvgDuration),
	}
}

// decodeVideoMetrics maps a video-dimensioned response into per-id metrics.
// Rows that fail schema checks are skipped and reported.
func decodeVideoMetrics(resp *youtubeanalytics.QueryResponse) (map[string]domain.VideoMetrics, []error) {
	cols := columnIndex(resp)
	byID := make(map[string]domain.VideoMetrics, len(resp.Rows))
	var errs []error

	for _, row := range resp.Rows {
		r := &rowReader{cols: cols, row: row}
		m := domain.VideoMetrics{
			ID:                     r.str("video"),
			Views:                  int64(r.float(metricViews)),
			WatchMinutes:           int64(r.float(metricWatchMinutes)),
			SubscribersGained:      int64(r.float(metricSubscribers)),
			Revenue:                r.optionalFloat(metricRevenue),
			AvgViewDurationSeconds: r.float(metricAvgDuration),
		}
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		byID[m.ID] = m
	}
	return byID, errs
}

// decodeSnapshot reads a dimension-less (single row) response. No rows
// means no data, which is distinct from a zero-valued snapshot.
func decodeSnapshot(resp *youtubeanalytics.QueryResponse, label string) (*domain.AggregateSnapshot, error) {
	if len(resp.Rows) == 0 {
		return nil, nil
	}

	r := &rowReader{cols: columnIndex(resp), row: resp.Rows[0]}
	snap := r.snapshot()
	if r.err != nil {
		return nil, r.err
	}
	snap.PeriodLabel = label
	return snap, nil
}

// decodeMonthlySnapshots maps a month-dimensioned response into snapshots
// keyed by the service's "YYYY-MM" month value.
func decodeMonthlySnapshots(resp *youtubeanalytics.QueryResponse) (map[string]*domain.AggregateSnapshot, []error) {
	cols := columnIndex(resp)
	byMonth := make(map[string]*domain.AggregateSnapshot, len(resp.Rows))
	var errs []error

	for _, row := range resp.Rows {
		r := &rowReader{cols: cols, row: row}
		month := r.str("month")
		snap := r.snapshot()
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		snap.PeriodLabel = month
		byMonth[month] = snap
	}
	return byMonth, errs
}
