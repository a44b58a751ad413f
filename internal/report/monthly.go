package report

import (
	"time"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/internal/util"
)

// BackCatalogID is the identifier literal of the monthly summary row.
const BackCatalogID = "BACK_CATALOG"

const backCatalogLabel = "Back Catalog (all previous videos)"

var monthlyColumns = []string{
	"Content ID",
	"Title",
	"Publish Date",
	"Duration",
	"Views",
	"Watch Time (hrs)",
	"Subscribers Gained",
	"Estimated Revenue",
	"Avg View Duration",
}

// BuildRecords left-joins the catalog listing with the details mapping.
// The listing is authoritative: entries without details keep zero values.
func BuildRecords(listing []domain.ListingEntry, details map[string]domain.VideoDetails) []domain.VideoRecord {
	records := make([]domain.VideoRecord, 0, len(listing))
	for _, entry := range listing {
		rec := domain.VideoRecord{
			ID:          entry.ID,
			Title:       entry.Title,
			PublishedAt: entry.PublishedAt,
		}
		if d, ok := details[entry.ID]; ok {
			rec.DurationSeconds = d.DurationSeconds
			rec.ViewCount = d.ViewCount
			rec.LikeCount = d.LikeCount
			rec.CommentCount = d.CommentCount
		}
		records = append(records, rec)
	}
	return records
}

// BuildMonthlyTable assembles the monthly tab: header, one row per video in
// listing order, the back-catalog summary row (when a snapshot exists), a
// blank separator, and a generation-timestamp row. Videos without a metrics
// match still appear with zero/default cells. The summary row must stay the
// last data row: the sheet formatting highlights it by position.
func BuildMonthlyTable(records []domain.VideoRecord, metrics map[string]domain.VideoMetrics, backCatalog *domain.AggregateSnapshot, rng domain.DateRange, generatedAt time.Time) domain.Table {
	cols := len(monthlyColumns)

	header := make([]any, cols)
	for i, name := range monthlyColumns {
		header[i] = name
	}
	table := domain.Table{header}

	for _, rec := range records {
		m := metrics[rec.ID]
		table = append(table, []any{
			rec.ID,
			rec.Title,
			rec.PublishedAt.UTC().Format("2006-01-02"),
			util.FormatDuration(rec.DurationSeconds),
			m.Views,
			util.Round2(float64(m.WatchMinutes) / 60),
			m.SubscribersGained,
			formatRevenue(m.Revenue),
			util.FormatDuration(int64(m.AvgViewDurationSeconds)),
		})
	}

	if backCatalog != nil {
		table = append(table, []any{
			BackCatalogID,
			backCatalogLabel,
			"Prior to " + rng.StartDate(),
			"N/A",
			backCatalog.Views,
			util.Round2(float64(backCatalog.WatchMinutes) / 60),
			backCatalog.SubscribersGained,
			formatRevenue(backCatalog.Revenue),
			util.FormatDuration(int64(backCatalog.AvgViewDurationSeconds)),
		})
	}

	table = append(table, blankRow(cols))
	table = append(table, paddedRow(cols, "Generated on: "+generatedAt.Format("2006-01-02 15:04:05")))

	return table
}

// MonthlyFormatRows returns how many leading rows of the monthly table the
// standard formatting covers: header, video rows, and the summary row when
// present. The trailing blank and timestamp rows stay unformatted.
func MonthlyFormatRows(videoCount int, hasBackCatalog bool) int {
	rows := 1 + videoCount
	if hasBackCatalog {
		rows++
	}
	return rows
}

func formatRevenue(revenue *float64) string {
	if revenue == nil {
		return util.FormatCurrency(0)
	}
	return util.FormatCurrency(*revenue)
}

func blankRow(cols int) []any {
	return paddedRow(cols, "")
}

func paddedRow(cols int, first string) []any {
	row := make([]any, cols)
	row[0] = first
	for i := 1; i < cols; i++ {
		row[i] = ""
	}
	return row
}
