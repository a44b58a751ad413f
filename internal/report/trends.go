package report

import (
	"fmt"
	"time"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/internal/util"
)

const (
	newVideosSection   = "New Videos Performance"
	backCatalogSection = "Back Catalog Performance"
	noDataRow          = "No data available"
)

// TrendSection records where a section's data rows landed in the assembled
// table, so the pipeline can point sparkline formulas at them. Rows and
// columns are 1-based sheet coordinates; FirstDataRow is 0 for a section
// that emitted no data rows.
type TrendSection struct {
	Title        string
	FirstDataRow int
	LastDataRow  int
	ViewsCol     int
	TrendCol     int
}

// TrendLayout describes the assembled trends tab.
type TrendLayout struct {
	Sections []TrendSection
}

// BuildTrendTable assembles the trends tab: a report header block, then one
// section per series (new videos, back catalog) with per-metric
// period-over-period changes. Change cells are blank for the first entry
// and whenever the preceding value is zero or missing.
func BuildTrendTable(channelID string, rng domain.DateRange, newVideos, backCatalog domain.TrendSeries, generatedAt time.Time) (domain.Table, TrendLayout) {
	var rows [][]any
	rows = append(rows,
		[]any{"Channel Performance Trends"},
		[]any{"Channel ID: " + channelID},
		[]any{"Reporting month: " + rng.Label},
		[]any{"Generated on: " + generatedAt.Format("2006-01-02 15:04:05")},
		[]any{},
	)

	layout := TrendLayout{}
	for i, s := range []struct {
		title  string
		series domain.TrendSeries
	}{
		{newVideosSection, newVideos},
		{backCatalogSection, backCatalog},
	} {
		if i > 0 {
			rows = append(rows, []any{})
		}
		sectionRows, section := buildSection(s.title, s.series, len(rows))
		rows = append(rows, sectionRows...)
		layout.Sections = append(layout.Sections, section)
	}

	// Pad to a rectangular grid; sections differ in width when only one of
	// them carries revenue columns.
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	table := make(domain.Table, 0, len(rows))
	for _, r := range rows {
		padded := make([]any, width)
		for i := range padded {
			padded[i] = ""
		}
		copy(padded, r)
		table = append(table, padded)
	}

	return table, layout
}

// buildSection renders one series section. rowOffset is the number of rows
// already emitted above it (0-based), used to compute sheet coordinates.
func buildSection(title string, series domain.TrendSeries, rowOffset int) ([][]any, TrendSection) {
	section := TrendSection{Title: title}
	rows := [][]any{{title}}

	if series.IsEmpty() {
		rows = append(rows, []any{noDataRow})
		return rows, section
	}

	withRevenue := series.HasRevenue()
	header := []any{"Month", "Views", "Change %", "Watch Time (hrs)", "Change %", "Subscribers", "Change %"}
	if withRevenue {
		header = append(header, "Revenue", "Change %")
	}
	header = append(header, "Trend")
	rows = append(rows, header)

	section.ViewsCol = 2
	section.TrendCol = len(header)
	section.FirstDataRow = rowOffset + len(rows) + 1

	var prev *domain.AggregateSnapshot
	for _, point := range series.Points {
		snap := point.Snapshot
		if snap == nil {
			row := []any{point.Period.Label, "No data"}
			rows = append(rows, row)
			prev = nil
			continue
		}

		row := []any{
			point.Period.Label,
			snap.Views,
			changeCell(prevMetric(prev, metricViews), float64(snap.Views)),
			util.Round2(float64(snap.WatchMinutes) / 60),
			changeCell(prevMetric(prev, metricWatch), float64(snap.WatchMinutes)),
			snap.SubscribersGained,
			changeCell(prevMetric(prev, metricSubs), float64(snap.SubscribersGained)),
		}
		if withRevenue {
			row = append(row, formatRevenue(snap.Revenue), revenueChangeCell(prev, snap))
		}
		row = append(row, "")
		rows = append(rows, row)
		prev = snap
	}

	section.LastDataRow = rowOffset + len(rows)
	return rows, section
}

type trendMetric int

const (
	metricViews trendMetric = iota
	metricWatch
	metricSubs
)

// prevMetric extracts the preceding value for change computation; nil when
// there is no preceding entry.
func prevMetric(prev *domain.AggregateSnapshot, m trendMetric) *float64 {
	if prev == nil {
		return nil
	}
	var v float64
	switch m {
	case metricViews:
		v = float64(prev.Views)
	case metricWatch:
		v = float64(prev.WatchMinutes)
	case metricSubs:
		v = float64(prev.SubscribersGained)
	}
	return &v
}

// PctChange computes (current-previous)/previous*100, or nil when there is
// no previous value or it is zero. A zero baseline has no defined change;
// reporting infinity or erroring would both be wrong.
func PctChange(previous *float64, current float64) *float64 {
	if previous == nil || *previous == 0 {
		return nil
	}
	v := (current - *previous) / *previous * 100
	return &v
}

func changeCell(previous *float64, current float64) string {
	c := PctChange(previous, current)
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%%", *c)
}

func revenueChangeCell(prev, current *domain.AggregateSnapshot) string {
	if prev == nil || prev.Revenue == nil || current.Revenue == nil {
		return ""
	}
	return changeCell(prev.Revenue, *current.Revenue)
}
