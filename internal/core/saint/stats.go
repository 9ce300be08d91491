// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/sanctorale/sanctorale/internal/platform/metrics"
	"github.com/sanctorale/sanctorale/pkg/calendar"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// Snapshot tuning.
const (
	topPopularLimit = 10
	upcomingDays    = 30

	// recomputeTimeout bounds a shared recomputation once it no longer
	// follows the cancellation of the request that started it.
	recomputeTimeout = 15 * time.Second
)

// # Snapshot

// Snapshot is the aggregate view served by GET /saints/stats.
type Snapshot struct {
	ByCategory  map[Category]int  `json:"by_category"`
	ByFeastType map[FeastType]int `json:"by_feast_type"`
	Totals      Totals            `json:"totals"`
	TopPopular  []*Saint          `json:"top_popular"`
	Upcoming    []*Saint          `json:"upcoming"`
	GeneratedAt string            `json:"generated_at"`
}

// # Cache Contract

// StatsCache stores the encoded snapshot.
//
// Readers must observe either the previous payload or the new one, never a mix.
type StatsCache interface {
	Get(context context.Context) ([]byte, bool, error)
	Set(context context.Context, payload []byte, ttl time.Duration) error
	Invalidate(context context.Context) error
}

// MemoryStatsCache implements [StatsCache] in process.
//
// The entry is swapped atomically, so concurrent readers never see a partial value.
type MemoryStatsCache struct {
	entry atomic.Pointer[memoryEntry]
	now   func() time.Time
}

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// NewMemoryStatsCache returns an empty cache reading time from now (time.Now when nil).
func NewMemoryStatsCache(now func() time.Time) *MemoryStatsCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryStatsCache{now: now}
}

// Get returns the payload while it has not expired.
func (cache *MemoryStatsCache) Get(_ context.Context) ([]byte, bool, error) {
	entry := cache.entry.Load()
	if entry == nil || !cache.now().Before(entry.expires) {
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set replaces the payload.
func (cache *MemoryStatsCache) Set(_ context.Context, payload []byte, ttl time.Duration) error {
	cache.entry.Store(&memoryEntry{payload: payload, expires: cache.now().Add(ttl)})
	return nil
}

// Invalidate drops the payload.
func (cache *MemoryStatsCache) Invalidate(_ context.Context) error {
	cache.entry.Store(nil)
	return nil
}

// # Aggregator

// statsAggregator serves the snapshot through the cache, recomputing on a miss.
//
// Concurrent misses share one recomputation. Every invalidation bumps the
// generation; a recomputation that started under an older generation still
// answers its callers but never writes the cache.
type statsAggregator struct {
	repo       Repository
	cache      StatsCache
	ttl        time.Duration
	location   *time.Location
	clock      func() time.Time
	logger     *slog.Logger
	group      singleflight.Group
	generation atomic.Uint64
}

/*
Snapshot returns the encoded stats snapshot.

Description: A cache hit returns the stored bytes unchanged, so repeated
calls within the TTL are byte-identical. A cache read failure is logged and
treated as a miss. On a miss the caller joins the shared recomputation, which
runs detached from any single request: a caller that goes away only stops
waiting, it never fails the others.

Returns:
  - []byte: JSON-encoded [Snapshot]
  - error: Aggregation errors, or the caller's own context error
*/
func (aggregator *statsAggregator) Snapshot(context context.Context) ([]byte, error) {
	payload, found, err := aggregator.cache.Get(context)
	switch {
	case err != nil:
		metrics.StatsCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		aggregator.logger.WarnContext(context, "stats_cache_read_failed", slog.Any("error", err))
	case found:
		metrics.StatsCacheRequests.WithLabelValues(metrics.CacheHit).Inc()
		return payload, nil
	default:
		metrics.StatsCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
	}

	results := aggregator.group.DoChan(statsCacheKey, func() (any, error) {
		detached, cancel := detach(context)
		defer cancel()
		return aggregator.recompute(detached)
	})

	select {
	case <-context.Done():
		return nil, context.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		aggregator.logger.DebugContext(context, "stats_cache_miss", slog.Bool("shared", result.Shared))
		return result.Val.([]byte), nil
	}
}

// Invalidate drops the cached snapshot after a mutation.
//
// Recomputations already in flight are forgotten, so later misses start a
// fresh one, and their results are kept out of the cache.
func (aggregator *statsAggregator) Invalidate(context context.Context) {
	aggregator.generation.Add(1)
	aggregator.group.Forget(statsCacheKey)
	if err := aggregator.cache.Invalidate(context); err != nil {
		aggregator.logger.WarnContext(context, "stats_cache_invalidate_failed", slog.Any("error", err))
	}
}

// detach keeps the values of parent but drops its cancellation.
func detach(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), recomputeTimeout)
}

func (aggregator *statsAggregator) recompute(context context.Context) ([]byte, error) {
	generation := aggregator.generation.Load()
	started := time.Now()
	defer func() {
		metrics.StatsRecomputeDuration.Observe(time.Since(started).Seconds())
	}()

	snapshot, err := aggregator.build(context)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to encode snapshot: %w", err)
	}

	if aggregator.generation.Load() != generation {
		aggregator.logger.DebugContext(context, "stats_cache_write_skipped", slog.String("reason", "invalidated"))
		return payload, nil
	}
	if err := aggregator.cache.Set(context, payload, aggregator.ttl); err != nil {
		aggregator.logger.WarnContext(context, "stats_cache_write_failed", slog.Any("error", err))
	}

	return payload, nil
}

func (aggregator *statsAggregator) build(context context.Context) (*Snapshot, error) {
	now := aggregator.clock()
	today := calendar.Today(now, aggregator.location)

	counts, err := aggregator.repo.Aggregate(context)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		ByCategory:  make(map[Category]int, len(Categories())),
		ByFeastType: make(map[FeastType]int, len(FeastTypes())),
		Totals:      counts.Totals,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	for _, category := range Categories() {
		snapshot.ByCategory[category] = counts.ByCategory[category]
	}
	for _, feastType := range FeastTypes() {
		snapshot.ByFeastType[feastType] = counts.ByFeastType[feastType]
	}

	// Top N by popularity
	top, _, err := aggregator.repo.List(context,
		Filter{Sort: Sort{Field: SortPopularityScore, Direction: Desc}},
		pagination.Params{Page: 1, PerPage: topPopularLimit},
	)
	if err != nil {
		return nil, err
	}
	snapshot.TopPopular = decorate(top, today)

	// Upcoming feasts of active saints
	active := true
	upcoming, err := aggregator.repo.ListAll(context, Filter{
		IsActive: &active,
		Window:   &FeastWindow{From: today, Days: upcomingDays},
		Sort:     DefaultSort,
	})
	if err != nil {
		return nil, err
	}
	snapshot.Upcoming = decorate(upcoming, today)
	sort.SliceStable(snapshot.Upcoming, func(i, j int) bool {
		left, right := snapshot.Upcoming[i], snapshot.Upcoming[j]
		if left.DaysUntilFeast != right.DaysUntilFeast {
			return left.DaysUntilFeast < right.DaysUntilFeast
		}
		return left.ID < right.ID
	})

	return snapshot, nil
}

// decorate fills the derived days_until_feast of every saint.
func decorate(saints []*Saint, today time.Time) []*Saint {
	for _, saint := range saints {
		saint.DaysUntilFeast = calendar.DaysUntil(today, saint.FeastDate.MonthDay())
	}
	return saints
}
