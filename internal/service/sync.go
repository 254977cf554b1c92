package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedcache/internal/domain"
)

type SyncService struct {
	feedURL   string
	remote    FeedLoader
	cache     FeedCache
	publisher Publisher
	metrics   Metrics
	now       func() time.Time
	logger    *slog.Logger
}

// NewSyncService wires a sync run. publisher and metrics may be nil.
func NewSyncService(
	feedURL string,
	remote FeedLoader,
	cache FeedCache,
	publisher Publisher,
	metrics Metrics,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		feedURL:   feedURL,
		remote:    remote,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
		logger:    logger.With("feed_url", feedURL),
	}
}

// Sync refreshes the cache from the remote feed. When the remote load
// fails the cached feed is served instead and the remote error is recorded
// in the stats.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()
	stats := &domain.SyncStats{FeedURL: s.feedURL}

	s.logger.Info("starting sync")

	s.cache.ValidateCache()

	feed, err := domain.AwaitLoad(ctx, s.remote)
	if err != nil {
		return s.serveFromCache(ctx, stats, startTime, err)
	}

	stats.Source = domain.SourceRemote
	stats.Fetched = len(feed)
	s.logger.Info("fetched feed from remote", "count", len(feed))

	if err := domain.AwaitSave(ctx, s.cache, feed); err != nil {
		return s.finish(stats, startTime, fmt.Errorf("save feed: %w", err))
	}
	stats.Saved = len(feed)
	stats.Served = len(feed)

	if s.publisher != nil {
		snapshot := &domain.FeedSnapshot{Images: feed, CachedAt: s.now()}
		if err := s.publisher.Publish(ctx, snapshot); err != nil {
			s.logger.Warn("failed to publish snapshot", "error", err)
			stats.Errors++
		} else {
			stats.Published++
		}
	}

	return s.finish(stats, startTime, nil)
}

func (s *SyncService) serveFromCache(ctx context.Context, stats *domain.SyncStats, startTime time.Time, remoteErr error) (*domain.SyncStats, error) {
	s.logger.Warn("remote load failed, serving cached feed", "error", remoteErr)
	stats.RemoteErr = remoteErr

	feed, err := domain.AwaitLoad(ctx, s.cache)
	if err != nil {
		return s.finish(stats, startTime, fmt.Errorf("load feed: %w", err))
	}

	stats.Source = domain.SourceCache
	stats.Served = len(feed)
	return s.finish(stats, startTime, nil)
}

func (s *SyncService) finish(stats *domain.SyncStats, startTime time.Time, err error) (*domain.SyncStats, error) {
	stats.Duration = time.Since(startTime)

	if s.metrics != nil {
		s.metrics.ObserveSync(stats, err)
	}

	if err != nil {
		s.logger.Error("sync failed",
			"remote_error", stats.RemoteErr,
			"duration", stats.Duration,
			"error", err,
		)
		return stats, err
	}

	s.logger.Info("sync completed",
		"source", stats.Source,
		"fetched", stats.Fetched,
		"saved", stats.Saved,
		"served", stats.Served,
		"published", stats.Published,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)
	return stats, nil
}
