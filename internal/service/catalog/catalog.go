package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/internal/util"
	"github.com/kjohnson/ytreport/pkg/errors"
)

const (
	// The platform caps both search pages and details batches at 50.
	maxPageSize  = 50
	maxBatchSize = 50
)

// Service wraps the YouTube Data API v3 for catalog reads: the paginated
// listing of videos published in a window, batched per-video details, and
// the channel's content-owner lookup.
type Service struct {
	yt     *youtube.Service
	pacer  *util.Pacer
	logger *zap.Logger
}

func NewService(yt *youtube.Service, pacer *util.Pacer, logger *zap.Logger) *Service {
	return &Service{
		yt:     yt,
		pacer:  pacer,
		logger: logger,
	}
}

// ListPublished retrieves every video published within the range, in the
// service's page order. All pages are accumulated before returning; a
// failure mid-pagination keeps whatever was fetched and marks the result
// incomplete instead of raising.
func (s *Service) ListPublished(ctx context.Context, channelID string, rng domain.DateRange) domain.ListingResult {
	after := rng.Start.UTC().Format(time.RFC3339)
	before := time.Date(rng.End.Year(), rng.End.Month(), rng.End.Day(), 23, 59, 59, 0, time.UTC).Format(time.RFC3339)

	result := collectListing(func(pageToken string) (*youtube.SearchListResponse, error) {
		call := s.yt.Search.List([]string{"id", "snippet"}).
			ChannelId(channelID).
			Type("video").
			Order("date").
			PublishedAfter(after).
			PublishedBefore(before).
			MaxResults(maxPageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		s.pacer.Wait()
		return resp, err
	})

	if !result.Complete {
		s.logger.Warn("Video listing stopped mid-pagination, keeping partial results",
			zap.String("channel", channelID),
			zap.Int("accumulated", len(result.Videos)),
			zap.Errors("errors", result.Errs))
	} else {
		s.logger.Info("Video listing fetched",
			zap.String("channel", channelID),
			zap.Int("videos", len(result.Videos)))
	}
	return result
}

// collectListing drives the pagination loop over an injected page fetcher.
func collectListing(fetchPage func(pageToken string) (*youtube.SearchListResponse, error)) domain.ListingResult {
	result := domain.ListingResult{Complete: true}
	pageToken := ""
	for {
		resp, err := fetchPage(pageToken)
		if err != nil {
			result.Complete = false
			result.Errs = append(result.Errs,
				errors.NewRemoteError("video listing page failed", "catalog", "search.list", err))
			return result
		}
		result.Videos = append(result.Videos, decodeListingPage(resp)...)
		if resp.NextPageToken == "" {
			return result
		}
		pageToken = resp.NextPageToken
	}
}

func decodeListingPage(resp *youtube.SearchListResponse) []domain.ListingEntry {
	entries := make([]domain.ListingEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		entry := domain.ListingEntry{
			ID:    item.Id.VideoId,
			Title: item.Snippet.Title,
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			entry.PublishedAt = t
		}
		entries = append(entries, entry)
	}
	return entries
}

// GetDetails retrieves static per-video details in batches of up to 50 ids.
// A failed batch is skipped (its ids end up missing from the mapping), not
// fatal to the whole call.
func (s *Service) GetDetails(ctx context.Context, ids []string) domain.DetailsResult {
	result := domain.DetailsResult{ByID: make(map[string]domain.VideoDetails), Complete: true}

	for start := 0; start < len(ids); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		resp, err := s.yt.Videos.List([]string{"contentDetails", "statistics"}).
			Id(batch...).
			Context(ctx).Do()
		s.pacer.Wait()
		if err != nil {
			s.logger.Warn("Video details batch failed, skipping",
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			result.Complete = false
			result.Errs = append(result.Errs,
				errors.NewRemoteError("video details batch failed", "catalog", "videos.list", err))
			continue
		}

		s.decodeDetails(resp, result.ByID)
	}

	return result
}

func (s *Service) decodeDetails(resp *youtube.VideoListResponse, out map[string]domain.VideoDetails) {
	for _, item := range resp.Items {
		details := domain.VideoDetails{}
		if item.ContentDetails != nil {
			seconds, err := util.ParseISODuration(item.ContentDetails.Duration)
			if err != nil {
				s.logger.Warn("Unparseable video duration, keeping zero",
					zap.String("video", item.Id),
					zap.String("token", item.ContentDetails.Duration))
			}
			details.DurationSeconds = seconds
		}
		if item.Statistics != nil {
			details.ViewCount = item.Statistics.ViewCount
			details.LikeCount = item.Statistics.LikeCount
			details.CommentCount = item.Statistics.CommentCount
		}
		out[item.Id] = details
	}
}

// ContentOwner resolves the channel's monetization identity. An empty
// return means revenue-bearing queries are off the table for this run;
// lookup failure degrades the report rather than aborting it.
func (s *Service) ContentOwner(ctx context.Context, channelID string) string {
	resp, err := s.yt.Channels.List([]string{"contentOwnerDetails"}).
		Id(channelID).
		Context(ctx).Do()
	s.pacer.Wait()
	if err != nil {
		s.logger.Warn("Content owner lookup failed, revenue metrics unavailable",
			zap.String("channel", channelID),
			zap.Error(err))
		return ""
	}

	if len(resp.Items) == 0 || resp.Items[0].ContentOwnerDetails == nil ||
		resp.Items[0].ContentOwnerDetails.ContentOwner == "" {
		s.logger.Warn("No content owner found for channel, revenue metrics unavailable",
			zap.String("channel", channelID))
		return ""
	}

	owner := resp.Items[0].ContentOwnerDetails.ContentOwner
	s.logger.Info("Content owner resolved",
		zap.String("channel", channelID),
		zap.String("content_owner", owner))
	return owner
}
