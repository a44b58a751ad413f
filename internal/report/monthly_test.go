package report

import (
	"testing"
	"time"

	"github.com/kjohnson/ytreport/internal/domain"
)

func sampleRange() domain.DateRange {
	return Resolve(domain.MonthSpec{Month: time.September, Year: 2025})
}

func TestBuildRecordsLeftJoin(t *testing.T) {
	listing := []domain.ListingEntry{
		{ID: "v1", Title: "First", PublishedAt: time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)},
		{ID: "v2", Title: "Second", PublishedAt: time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)},
	}
	details := map[string]domain.VideoDetails{
		"v1": {DurationSeconds: 300, ViewCount: 1000, LikeCount: 50, CommentCount: 10},
	}

	records := BuildRecords(listing, details)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].DurationSeconds != 300 || records[0].ViewCount != 1000 {
		t.Errorf("v1 details not joined: %+v", records[0])
	}
	// v2 has no details but must survive the join with zeros.
	if records[1].ID != "v2" || records[1].DurationSeconds != 0 || records[1].ViewCount != 0 {
		t.Errorf("v2 should be kept with zero details: %+v", records[1])
	}
}

func TestBuildMonthlyTableScenario(t *testing.T) {
	rng := sampleRange()
	records := BuildRecords([]domain.ListingEntry{
		{ID: "v1", Title: "First", PublishedAt: time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)},
		{ID: "v2", Title: "Second", PublishedAt: time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)},
	}, map[string]domain.VideoDetails{
		"v1": {DurationSeconds: 3723},
		"v2": {DurationSeconds: 45},
	})

	revenue := 12.5
	metrics := map[string]domain.VideoMetrics{
		"v1": {
			ID:                     "v1",
			Views:                  500,
			WatchMinutes:           120,
			SubscribersGained:      7,
			Revenue:                &revenue,
			AvgViewDurationSeconds: 95,
		},
		// no metrics for v2
	}

	backCatalog := &domain.AggregateSnapshot{
		Views:                  9000,
		WatchMinutes:           6000,
		SubscribersGained:      42,
		AvgViewDurationSeconds: 123,
	}

	generatedAt := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	table := BuildMonthlyTable(records, metrics, backCatalog, rng, generatedAt)

	// header + 2 videos + summary + blank + timestamp
	if table.RowCount() != 6 {
		t.Fatalf("got %d rows, want 6", table.RowCount())
	}
	if table.ColCount() != 9 {
		t.Fatalf("got %d columns, want 9", table.ColCount())
	}
	for i, row := range table {
		if len(row) != 9 {
			t.Errorf("row %d has %d cells, want 9", i, len(row))
		}
	}

	v1 := table[1]
	if v1[0] != "v1" || v1[3] != "62:03" || v1[4] != int64(500) {
		t.Errorf("v1 row wrong: %v", v1)
	}
	if v1[5] != 2.0 {
		t.Errorf("v1 watch hours = %v, want 2", v1[5])
	}
	if v1[7] != "$12.50" {
		t.Errorf("v1 revenue = %v, want $12.50", v1[7])
	}
	if v1[8] != "1:35" {
		t.Errorf("v1 avg view duration = %v, want 1:35", v1[8])
	}

	// v2 has no metrics match: defaulted cells, still present.
	v2 := table[2]
	if v2[0] != "v2" || v2[4] != int64(0) || v2[7] != "$0.00" || v2[8] != "0:00" {
		t.Errorf("v2 row should default to zeros: %v", v2)
	}

	summary := table[3]
	if summary[0] != BackCatalogID {
		t.Errorf("summary identifier = %v, want %s", summary[0], BackCatalogID)
	}
	if summary[2] != "Prior to 2025-09-01" {
		t.Errorf("summary period = %v", summary[2])
	}
	if summary[3] != "N/A" {
		t.Errorf("summary duration = %v, want N/A", summary[3])
	}
	if summary[7] != "$0.00" {
		t.Errorf("summary revenue should default: %v", summary[7])
	}

	if table[5][0] != "Generated on: 2025-10-01 09:30:00" {
		t.Errorf("timestamp row = %v", table[5][0])
	}
}

func TestBuildMonthlyTableRowOrder(t *testing.T) {
	rng := sampleRange()
	records := BuildRecords([]domain.ListingEntry{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}, nil)
	table := BuildMonthlyTable(records, nil, &domain.AggregateSnapshot{Views: 1}, rng, time.Now())

	// The row immediately before the trailing blank+timestamp rows must be
	// the summary; the formatting highlight lands there by position.
	summaryRow := table[table.RowCount()-3]
	if summaryRow[0] != BackCatalogID {
		t.Errorf("row before blank+timestamp = %v, want %s", summaryRow[0], BackCatalogID)
	}

	rows := MonthlyFormatRows(len(records), true)
	if rows != 5 {
		t.Errorf("MonthlyFormatRows = %d, want 5", rows)
	}
	if got := table[rows-1]; got[0] != BackCatalogID {
		t.Errorf("format row count does not end on summary row: %v", got[0])
	}
}

func TestBuildMonthlyTableEmptyListing(t *testing.T) {
	rng := sampleRange()
	table := BuildMonthlyTable(nil, nil, &domain.AggregateSnapshot{Views: 10}, rng, time.Now())

	// header + summary + blank + timestamp: never entirely empty when the
	// aggregate succeeded.
	if table.RowCount() != 4 {
		t.Fatalf("got %d rows, want 4", table.RowCount())
	}
	if table[1][0] != BackCatalogID {
		t.Errorf("row 1 = %v, want summary", table[1][0])
	}
}

func TestBuildMonthlyTableNoBackCatalog(t *testing.T) {
	rng := sampleRange()
	records := BuildRecords([]domain.ListingEntry{{ID: "v1"}}, nil)
	table := BuildMonthlyTable(records, nil, nil, rng, time.Now())

	// header + video + blank + timestamp; no summary row when the aggregate
	// reported no data.
	if table.RowCount() != 4 {
		t.Fatalf("got %d rows, want 4", table.RowCount())
	}
	if table[1][0] != "v1" {
		t.Errorf("row 1 = %v, want v1", table[1][0])
	}
	if rows := MonthlyFormatRows(1, false); rows != 2 {
		t.Errorf("MonthlyFormatRows = %d, want 2", rows)
	}
}
