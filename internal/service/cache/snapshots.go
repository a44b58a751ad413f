package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjohnson/ytreport/internal/domain"
)

// snapshotTTL bounds how long a closed-month aggregate stays cached. Closed
// months do not change, so the TTL only limits cache growth.
const snapshotTTL = 30 * 24 * time.Hour

// SnapshotStore caches closed-month aggregate snapshots between runs. Trend
// generation issues one aggregate query per trailing month; months that
// have already ended never change, so re-querying them only burns quota.
// All methods are nil-safe no-ops so callers need no cache-enabled branch.
type SnapshotStore struct {
	cache  *Service
	logger *zap.Logger
}

func NewSnapshotStore(cache *Service, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		cache:  cache,
		logger: logger,
	}
}

// SnapshotKey builds the cache key for one (channel, scope, kind, month)
// snapshot. The query scope is part of the key: owner-scoped aggregates are
// claim-filtered and may carry revenue, so they must never be replayed into
// a channel-scoped run (or vice versa).
func SnapshotKey(channelID, scope string, kind domain.TrendKind, rng domain.DateRange) string {
	return fmt.Sprintf("ytreport:agg:%s:%s:%s:%s", channelID, scope, kind, rng.Start.Format("2006-01"))
}

// Closed reports whether the range ended before today; only such months are
// cacheable.
func Closed(rng domain.DateRange, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return rng.End.Before(today)
}

// Get returns a cached snapshot, or (nil, false) on miss, open month, or
// any cache failure. Cache trouble never degrades the pipeline.
func (s *SnapshotStore) Get(ctx context.Context, channelID, scope string, kind domain.TrendKind, rng domain.DateRange) (*domain.AggregateSnapshot, bool) {
	if s == nil || !Closed(rng, time.Now().UTC()) {
		return nil, false
	}

	key := SnapshotKey(channelID, scope, kind, rng)
	var snap domain.AggregateSnapshot
	found, err := s.cache.Get(ctx, key, &snap)
	if err != nil || !found {
		return nil, false
	}

	s.logger.Debug("Snapshot cache hit", zap.String("key", key))
	return &snap, true
}

// Put stores a snapshot for a closed month. Failures are logged by the
// underlying cache and otherwise ignored.
func (s *SnapshotStore) Put(ctx context.Context, channelID, scope string, kind domain.TrendKind, rng domain.DateRange, snap *domain.AggregateSnapshot) {
	if s == nil || snap == nil || !Closed(rng, time.Now().UTC()) {
		return
	}
	_ = s.cache.Set(ctx, SnapshotKey(channelID, scope, kind, rng), snap, snapshotTTL)
}
