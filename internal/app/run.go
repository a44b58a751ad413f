package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/internal/report"
	"github.com/kjohnson/ytreport/internal/service/sheets"
)

// trendsTabName is the fixed title of the trailing-window trend tab; the
// monthly tab is named after the reporting month.
const trendsTabName = "Trends"

// Run executes the full report pipeline: monthly tab, then trends tab.
// Read failures degrade to partial data with logged warnings; spreadsheet
// write failures abort.
func Run(ctx context.Context, c *Container) error {
	cfg := c.Config
	logger := c.Logger

	spec, err := report.ParseMonthSpec(cfg.Month)
	if err != nil {
		return err
	}
	rng := report.Resolve(spec)

	logger.Info("Generating report",
		zap.String("channel", cfg.ChannelID),
		zap.String("period", rng.Label),
		zap.String("start", rng.StartDate()),
		zap.String("end", rng.EndDate()))

	// The monetization identity is resolved once and fixed for the run; it
	// decides query scope and whether revenue appears at all.
	owner := c.Catalog.ContentOwner(ctx, cfg.ChannelID)
	an := c.NewAnalytics(owner)

	generatedAt := time.Now()

	if err := c.runMonthly(ctx, an, rng, generatedAt); err != nil {
		return err
	}
	if err := c.runTrends(ctx, an, spec, rng, generatedAt); err != nil {
		return err
	}

	logger.Info("Report generation complete",
		zap.String("channel", cfg.ChannelID),
		zap.String("period", rng.Label))
	return nil
}

func (c *Container) runMonthly(ctx context.Context, an analyticsFetcher, rng domain.DateRange, generatedAt time.Time) error {
	cfg := c.Config
	logger := c.Logger

	listing := c.Catalog.ListPublished(ctx, cfg.ChannelID, rng)
	if !listing.Complete {
		logger.Warn("Catalog listing incomplete, monthly tab may undercount",
			zap.Int("videos", len(listing.Videos)))
	}

	ids := make([]string, 0, len(listing.Videos))
	for _, v := range listing.Videos {
		ids = append(ids, v.ID)
	}

	details := c.Catalog.GetDetails(ctx, ids)
	if !details.Complete {
		logger.Warn("Video details incomplete, some rows will show zero details",
			zap.Int("resolved", len(details.ByID)),
			zap.Int("requested", len(ids)))
	}

	metrics := an.VideoMetrics(ctx, ids, rng)
	if !metrics.Complete {
		logger.Warn("Per-video metrics incomplete, some rows will show zero metrics",
			zap.Int("resolved", len(metrics.ByID)),
			zap.Int("requested", len(ids)))
	}

	backCatalog := an.BackCatalogAggregate(ctx, rng, rng.Start)
	if !backCatalog.Complete {
		logger.Warn("Back-catalog aggregate unavailable, summary row omitted")
	}

	records := report.BuildRecords(listing.Videos, details.ByID)
	table := report.BuildMonthlyTable(records, metrics.ByID, backCatalog.Snapshot, rng, generatedAt)

	if err := c.Sheets.EnsureTab(ctx, rng.Label); err != nil {
		return err
	}
	if err := c.Sheets.WriteTable(ctx, rng.Label, table); err != nil {
		return err
	}

	// The last-row highlight is only meaningful when the summary row exists;
	// without it the last formatted row is an ordinary video row.
	hasSummary := backCatalog.Snapshot != nil
	formatRows := report.MonthlyFormatRows(len(records), hasSummary)
	if err := c.Sheets.ApplyStandardFormat(ctx, rng.Label, formatRows, table.ColCount(), hasSummary); err != nil {
		logger.Warn("Formatting failed, report content is intact", zap.Error(err))
	}
	return nil
}

func (c *Container) runTrends(ctx context.Context, an analyticsFetcher, spec domain.MonthSpec, rng domain.DateRange, generatedAt time.Time) error {
	cfg := c.Config
	logger := c.Logger

	windows := report.MonthWindows(spec, cfg.TrendMonths)

	newVideos := an.NewVideoTrend(ctx, windows)
	if !newVideos.Complete {
		logger.Warn("New-video trend incomplete", zap.Int("errors", len(newVideos.Errs)))
	}
	backCatalog := an.BackCatalogTrend(ctx, windows)
	if !backCatalog.Complete {
		logger.Warn("Back-catalog trend incomplete", zap.Int("errors", len(backCatalog.Errs)))
	}

	table, layout := report.BuildTrendTable(cfg.ChannelID, rng, newVideos.Series, backCatalog.Series, generatedAt)

	if err := c.Sheets.EnsureTab(ctx, trendsTabName); err != nil {
		return err
	}
	if err := c.Sheets.WriteTable(ctx, trendsTabName, table); err != nil {
		return err
	}

	for _, section := range layout.Sections {
		if section.FirstDataRow == 0 {
			continue
		}
		dataRange := sheets.RangeRef(section.ViewsCol, section.FirstDataRow, section.ViewsCol, section.LastDataRow)
		targetRange := sheets.RangeRef(section.TrendCol, section.FirstDataRow, section.TrendCol, section.LastDataRow)
		if err := c.Sheets.AddSparkline(ctx, trendsTabName, dataRange, targetRange); err != nil {
			logger.Warn("Sparkline write failed, trend column left blank",
				zap.String("section", section.Title),
				zap.Error(err))
		}
	}
	return nil
}

// The pipeline depends on its services through these slices so tests can
// substitute fakes.

type analyticsFetcher interface {
	VideoMetrics(ctx context.Context, ids []string, rng domain.DateRange) domain.MetricsResult
	BackCatalogAggregate(ctx context.Context, rng domain.DateRange, excludeAfter time.Time) domain.AggregateResult
	BackCatalogTrend(ctx context.Context, windows []domain.DateRange) domain.TrendResult
	NewVideoTrend(ctx context.Context, windows []domain.DateRange) domain.TrendResult
}

type catalogFetcher interface {
	ListPublished(ctx context.Context, channelID string, rng domain.DateRange) domain.ListingResult
	GetDetails(ctx context.Context, ids []string) domain.DetailsResult
	ContentOwner(ctx context.Context, channelID string) string
}

type sheetWriter interface {
	EnsureTab(ctx context.Context, name string) error
	WriteTable(ctx context.Context, name string, table domain.Table) error
	ApplyStandardFormat(ctx context.Context, name string, rowCount, colCount int, highlightLast bool) error
	AddSparkline(ctx context.Context, name, dataRangeRef, targetRangeRef string) error
}
