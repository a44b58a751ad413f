package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/youtubeanalytics/v2"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/internal/service/cache"
	"github.com/kjohnson/ytreport/internal/util"
	"github.com/kjohnson/ytreport/pkg/errors"
)

const (
	metricViews        = "views"
	metricWatchMinutes = "estimatedMinutesWatched"
	metricSubscribers  = "subscribersGained"
	metricRevenue      = "estimatedRevenue"
	metricAvgDuration  = "averageViewDuration"

	// The analytics service caps id-list filters at 500 entries.
	maxIDsPerFilter = 500
)

// Service wraps the YouTube Analytics API v2 for the per-video metrics
// query and the aggregate (dimension-less) back-catalog queries. The
// monetization identity is resolved once per run and fixed at construction;
// it decides both the query scope and whether revenue is requested at all.
type Service struct {
	api          *youtubeanalytics.Service
	snapshots    *cache.SnapshotStore
	pacer        *util.Pacer
	logger       *zap.Logger
	channelID    string
	contentOwner string
}

func NewService(api *youtubeanalytics.Service, snapshots *cache.SnapshotStore, pacer *util.Pacer, logger *zap.Logger, channelID, contentOwner string) *Service {
	return &Service{
		api:          api,
		snapshots:    snapshots,
		pacer:        pacer,
		logger:       logger,
		channelID:    channelID,
		contentOwner: contentOwner,
	}
}

// metricList returns the metrics to request. Revenue is silently omitted
// without a monetization identity: the service rejects it under plain
// channel scope.
func (s *Service) metricList() []string {
	metrics := []string{metricViews, metricWatchMinutes, metricSubscribers, metricAvgDuration}
	if s.contentOwner != "" {
		metrics = append(metrics, metricRevenue)
	}
	return metrics
}

func (s *Service) scopeIDs() string {
	if s.contentOwner != "" {
		return "contentOwner==" + s.contentOwner
	}
	return "channel==" + s.channelID
}

// cacheScope identifies the query scope for cache keys. Owner-scoped
// aggregates are claim-filtered and revenue-bearing, so they are cached
// separately from channel-scoped ones.
func (s *Service) cacheScope() string {
	if s.contentOwner != "" {
		return s.contentOwner
	}
	return "channel"
}

type querySpec struct {
	dimensions string
	filters    string
	sort       string
	startDate  string
	endDate    string
	metrics    []string
	maxResults int64
}

func (s *Service) query(ctx context.Context, operation string, q querySpec) (*youtubeanalytics.QueryResponse, error) {
	call := s.api.Reports.Query().
		Ids(s.scopeIDs()).
		StartDate(q.startDate).
		EndDate(q.endDate).
		Metrics(strings.Join(q.metrics, ","))
	if q.dimensions != "" {
		call = call.Dimensions(q.dimensions)
	}
	if q.filters != "" {
		call = call.Filters(q.filters)
	}
	if q.sort != "" {
		call = call.Sort(q.sort)
	}
	if q.maxResults > 0 {
		call = call.MaxResults(q.maxResults)
	}

	resp, err := call.Context(ctx).Do()
	s.pacer.Wait()
	if err != nil {
		return nil, errors.NewRemoteError("analytics query failed", "analytics", operation, err)
	}
	return resp, nil
}

// VideoMetrics runs the per-video (dimensioned) metrics query for the given
// ids over the range. Ids are chunked into the filter limit and merged. An
// empty id set or a failed query yields an empty mapping, never an error.
func (s *Service) VideoMetrics(ctx context.Context, ids []string, rng domain.DateRange) domain.MetricsResult {
	result := domain.MetricsResult{ByID: make(map[string]domain.VideoMetrics), Complete: true}
	if len(ids) == 0 {
		return result
	}

	for start := 0; start < len(ids); start += maxIDsPerFilter {
		end := start + maxIDsPerFilter
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		resp, err := s.query(ctx, "videoMetrics", querySpec{
			dimensions: "video",
			filters:    "video==" + strings.Join(chunk, ","),
			startDate:  rng.StartDate(),
			endDate:    rng.EndDate(),
			metrics:    s.metricList(),
			maxResults: int64(len(chunk)),
		})
		if err != nil {
			s.logger.Warn("Per-video metrics query failed, videos will report zero metrics",
				zap.Int("ids", len(chunk)),
				zap.Error(err))
			result.Complete = false
			result.Errs = append(result.Errs, err)
			continue
		}

		byID, errs := decodeVideoMetrics(resp)
		for id, m := range byID {
			result.ByID[id] = m
		}
		if len(errs) > 0 {
			s.logger.Warn("Some metrics rows could not be decoded",
				zap.Int("skipped", len(errs)))
			result.Complete = false
			result.Errs = append(result.Errs, errs...)
		}
	}

	return result
}

// BackCatalogAggregate runs the dimension-less aggregate query over the
// range, restricted to videos uploaded before excludeAfter. A nil snapshot
// means the service reported no rows (or the query failed, flagged by
// Complete) — callers must not read that as zero-valued metrics.
func (s *Service) BackCatalogAggregate(ctx context.Context, rng domain.DateRange, excludeAfter time.Time) domain.AggregateResult {
	// Only the canonical "everything before this window" shape is cached.
	cacheable := excludeAfter.Equal(rng.Start)
	if cacheable {
		if snap, ok := s.snapshots.Get(ctx, s.channelID, s.cacheScope(), domain.TrendBackCatalog, rng); ok {
			return domain.AggregateResult{Snapshot: snap, Complete: true}
		}
	}

	filters := "uploaded<" + excludeAfter.Format("2006-01-02")
	if s.contentOwner != "" {
		// Owner-scoped queries see claims across the owner's whole catalog,
		// so restrict to this channel's claimed assets. The channel-scoped
		// fallback has no claimed-status vocabulary and stays unfiltered.
		filters = fmt.Sprintf("channel==%s;claimedStatus==claimed;%s", s.channelID, filters)
	}

	resp, err := s.query(ctx, "backCatalogAggregate", querySpec{
		filters:   filters,
		startDate: rng.StartDate(),
		endDate:   rng.EndDate(),
		metrics:   s.metricList(),
	})
	if err != nil {
		s.logger.Warn("Back-catalog aggregate query failed",
			zap.String("period", rng.Label),
			zap.Error(err))
		return domain.AggregateResult{Complete: false, Errs: []error{err}}
	}

	snap, derr := decodeSnapshot(resp, rng.Label)
	if derr != nil {
		s.logger.Warn("Back-catalog aggregate row could not be decoded",
			zap.String("period", rng.Label),
			zap.Error(derr))
		return domain.AggregateResult{Complete: false, Errs: []error{derr}}
	}
	if snap == nil {
		s.logger.Debug("No back-catalog data for period", zap.String("period", rng.Label))
		return domain.AggregateResult{Complete: true}
	}

	if cacheable {
		s.snapshots.Put(ctx, s.channelID, s.cacheScope(), domain.TrendBackCatalog, rng, snap)
	}
	return domain.AggregateResult{Snapshot: snap, Complete: true}
}

// BackCatalogTrend produces one back-catalog aggregate per window, each
// scoped to "uploaded before that window's own start".
func (s *Service) BackCatalogTrend(ctx context.Context, windows []domain.DateRange) domain.TrendResult {
	result := domain.TrendResult{
		Series:   domain.TrendSeries{Kind: domain.TrendBackCatalog},
		Complete: true,
	}
	for _, w := range windows {
		agg := s.BackCatalogAggregate(ctx, w, w.Start)
		if !agg.Complete {
			result.Complete = false
			result.Errs = append(result.Errs, agg.Errs...)
		}
		result.Series.Points = append(result.Series.Points, domain.TrendPoint{
			Period:   w,
			Snapshot: agg.Snapshot,
		})
	}
	return result
}

// NewVideoTrend covers the same windows with a single month-dimensioned
// query instead of one call per month. Months missing from the response
// become nil points.
func (s *Service) NewVideoTrend(ctx context.Context, windows []domain.DateRange) domain.TrendResult {
	result := domain.TrendResult{
		Series:   domain.TrendSeries{Kind: domain.TrendNewVideos},
		Complete: true,
	}
	if len(windows) == 0 {
		return result
	}

	byMonth := map[string]*domain.AggregateSnapshot{}
	resp, err := s.query(ctx, "newVideoTrend", querySpec{
		dimensions: "month",
		sort:       "month",
		startDate:  windows[0].StartDate(),
		endDate:    windows[len(windows)-1].EndDate(),
		metrics:    s.metricList(),
	})
	if err != nil {
		s.logger.Warn("Monthly trend query failed, trend section will be empty",
			zap.Error(err))
		result.Complete = false
		result.Errs = append(result.Errs, err)
	} else {
		var errs []error
		byMonth, errs = decodeMonthlySnapshots(resp)
		if len(errs) > 0 {
			s.logger.Warn("Some trend rows could not be decoded",
				zap.Int("skipped", len(errs)))
			result.Complete = false
			result.Errs = append(result.Errs, errs...)
		}
	}

	for _, w := range windows {
		snap := byMonth[w.Start.Format("2006-01")]
		if snap != nil {
			snap.PeriodLabel = w.Label
		}
		result.Series.Points = append(result.Series.Points, domain.TrendPoint{
			Period:   w,
			Snapshot: snap,
		})
	}
	return result
}
