package report

import (
	"testing"
	"time"

	"github.com/kjohnson/ytreport/internal/domain"
)

func trendWindows(n int) []domain.DateRange {
	return MonthWindows(domain.MonthSpec{Month: time.September, Year: 2025}, n)
}

func seriesFromViews(kind domain.TrendKind, views []int64) domain.TrendSeries {
	windows := trendWindows(len(views))
	s := domain.TrendSeries{Kind: kind}
	for i, v := range views {
		s.Points = append(s.Points, domain.TrendPoint{
			Period: windows[i],
			Snapshot: &domain.AggregateSnapshot{
				PeriodLabel: windows[i].Label,
				Views:       v,
			},
		})
	}
	return s
}

func TestPctChange(t *testing.T) {
	prev := 100.0
	if got := PctChange(&prev, 150); got == nil || *got != 50.0 {
		t.Errorf("PctChange(100, 150) = %v, want 50", got)
	}

	prev = 150
	if got := PctChange(&prev, 90); got == nil || *got != -40.0 {
		t.Errorf("PctChange(150, 90) = %v, want -40", got)
	}

	// Zero baseline and missing baseline both yield an absent change, never
	// infinity or an error.
	zero := 0.0
	if got := PctChange(&zero, 100); got != nil {
		t.Errorf("PctChange(0, 100) = %v, want nil", got)
	}
	if got := PctChange(nil, 100); got != nil {
		t.Errorf("PctChange(nil, 100) = %v, want nil", got)
	}
}

func TestBuildTrendTableChanges(t *testing.T) {
	rng := sampleRange()
	series := seriesFromViews(domain.TrendNewVideos, []int64{100, 150, 90})
	empty := domain.TrendSeries{Kind: domain.TrendBackCatalog}

	table, layout := BuildTrendTable("UC123", rng, series, empty, time.Now())

	section := layout.Sections[0]
	if section.FirstDataRow == 0 {
		t.Fatal("new-videos section reported no data rows")
	}
	if section.LastDataRow-section.FirstDataRow != 2 {
		t.Fatalf("section spans %d rows, want 3", section.LastDataRow-section.FirstDataRow+1)
	}

	first := table[section.FirstDataRow-1]
	second := table[section.FirstDataRow]
	third := table[section.FirstDataRow+1]

	if first[2] != "" {
		t.Errorf("first entry change = %v, want blank", first[2])
	}
	if second[2] != "50.0%" {
		t.Errorf("second entry change = %v, want 50.0%%", second[2])
	}
	if third[2] != "-40.0%" {
		t.Errorf("third entry change = %v, want -40.0%%", third[2])
	}
}

func TestBuildTrendTableZeroBaseline(t *testing.T) {
	rng := sampleRange()
	series := seriesFromViews(domain.TrendNewVideos, []int64{0, 100})
	empty := domain.TrendSeries{}

	table, layout := BuildTrendTable("UC123", rng, series, empty, time.Now())
	section := layout.Sections[0]
	second := table[section.FirstDataRow]
	if second[2] != "" {
		t.Errorf("change against zero baseline = %v, want blank", second[2])
	}
}

func TestBuildTrendTableEmptySeries(t *testing.T) {
	rng := sampleRange()
	empty := domain.TrendSeries{}

	table, layout := BuildTrendTable("UC123", rng, empty, empty, time.Now())

	for _, section := range layout.Sections {
		if section.FirstDataRow != 0 {
			t.Errorf("empty section %q reported data rows", section.Title)
		}
	}

	found := 0
	for _, row := range table {
		if row[0] == "No data available" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("found %d no-data rows, want 2", found)
	}
}

func TestBuildTrendTableRevenueColumns(t *testing.T) {
	rng := sampleRange()
	revenue := 25.0
	windows := trendWindows(2)
	withRevenue := domain.TrendSeries{
		Kind: domain.TrendNewVideos,
		Points: []domain.TrendPoint{
			{Period: windows[0], Snapshot: &domain.AggregateSnapshot{Views: 10, Revenue: &revenue}},
			{Period: windows[1], Snapshot: &domain.AggregateSnapshot{Views: 20}},
		},
	}
	without := seriesFromViews(domain.TrendBackCatalog, []int64{5, 6})

	table, layout := BuildTrendTable("UC123", rng, withRevenue, without, time.Now())

	// With revenue: Month + 3 metric pairs + revenue pair + trend = 10.
	if layout.Sections[0].TrendCol != 10 {
		t.Errorf("revenue section trend col = %d, want 10", layout.Sections[0].TrendCol)
	}
	// Without revenue: 8 columns.
	if layout.Sections[1].TrendCol != 8 {
		t.Errorf("plain section trend col = %d, want 8", layout.Sections[1].TrendCol)
	}

	headerRow := table[layout.Sections[0].FirstDataRow-2]
	if headerRow[7] != "Revenue" {
		t.Errorf("expected Revenue header at col 8, got %v", headerRow[7])
	}

	revCell := table[layout.Sections[0].FirstDataRow-1][7]
	if revCell != "$25.00" {
		t.Errorf("revenue cell = %v, want $25.00", revCell)
	}
	// Second point has no revenue value; cell defaults to $0.00 format.
	revCell2 := table[layout.Sections[0].FirstDataRow][7]
	if revCell2 != "$0.00" {
		t.Errorf("missing revenue cell = %v, want $0.00", revCell2)
	}
}

func TestBuildTrendTableRectangular(t *testing.T) {
	rng := sampleRange()
	revenue := 1.0
	windows := trendWindows(1)
	withRevenue := domain.TrendSeries{
		Kind:   domain.TrendNewVideos,
		Points: []domain.TrendPoint{{Period: windows[0], Snapshot: &domain.AggregateSnapshot{Revenue: &revenue}}},
	}
	without := seriesFromViews(domain.TrendBackCatalog, []int64{1})

	table, _ := BuildTrendTable("UC123", rng, withRevenue, without, time.Now())
	width := len(table[0])
	for i, row := range table {
		if len(row) != width {
			t.Errorf("row %d has %d cells, want %d", i, len(row), width)
		}
	}
}
