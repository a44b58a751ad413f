package domain

import "time"

// ListingEntry is one catalog search result for the reporting window.
type ListingEntry struct {
	ID          string
	Title       string
	PublishedAt time.Time
}

// VideoDetails holds the static per-video statistics returned by the
// catalog details call.
type VideoDetails struct {
	DurationSeconds int64
	ViewCount       uint64
	LikeCount       uint64
	CommentCount    uint64
}

// VideoRecord joins a listing entry with its details. The listing is
// authoritative for presence: an entry with no details keeps zero values
// and is never dropped.
type VideoRecord struct {
	ID              string
	Title           string
	PublishedAt     time.Time
	DurationSeconds int64
	ViewCount       uint64
	LikeCount       uint64
	CommentCount    uint64
}

// VideoMetrics holds the per-video analytics metrics for the reporting
// window. Revenue is nil when no monetization identity is available.
type VideoMetrics struct {
	ID                     string
	Views                  int64
	WatchMinutes           int64
	SubscribersGained      int64
	Revenue                *float64
	AvgViewDurationSeconds float64
}
