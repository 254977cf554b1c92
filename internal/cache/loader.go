package cache

import (
	"log/slog"
	"sync/atomic"
	"time"

	"feedcache/internal/domain"
)

// LocalFeedLoader saves, loads and validates the cached feed.
type LocalFeedLoader struct {
	store    Store
	now      func() time.Time
	logger   *slog.Logger
	released atomic.Bool
}

var (
	_ domain.FeedLoader = (*LocalFeedLoader)(nil)
	_ domain.FeedSaver  = (*LocalFeedLoader)(nil)
)

func NewLocalFeedLoader(store Store, now func() time.Time, logger *slog.Logger) *LocalFeedLoader {
	return &LocalFeedLoader{
		store:  store,
		now:    now,
		logger: logger.With("component", "local_feed_loader"),
	}
}

// Save replaces the cached feed. The insert is only attempted once the
// previous snapshot was deleted successfully.
func (l *LocalFeedLoader) Save(feed []domain.FeedImage, completion func(error)) {
	l.store.DeleteCachedFeed(func(err error) {
		if l.released.Load() {
			return
		}
		if err != nil {
			completion(err)
			return
		}
		l.cache(feed, completion)
	})
}

func (l *LocalFeedLoader) cache(feed []domain.FeedImage, completion func(error)) {
	l.store.Insert(toLocal(feed), l.now(), func(err error) {
		if l.released.Load() {
			return
		}
		completion(err)
	})
}

// Load delivers the cached feed if it is still fresh. Stale and missing
// snapshots both load as an empty feed; neither is deleted here.
func (l *LocalFeedLoader) Load(completion func([]domain.FeedImage, error)) {
	l.store.Retrieve(func(r Retrieval) {
		if l.released.Load() {
			return
		}

		switch {
		case r.Kind == RetrievalFailure:
			completion(nil, r.Err)
		case r.Kind == RetrievalFound && IsFresh(r.Timestamp, l.now()):
			completion(toModels(r.Feed), nil)
		default:
			completion([]domain.FeedImage{}, nil)
		}
	})
}

// ValidateCache deletes a snapshot that is unreadable or expired.
func (l *LocalFeedLoader) ValidateCache() {
	l.store.Retrieve(func(r Retrieval) {
		if l.released.Load() {
			return
		}

		switch {
		case r.Kind == RetrievalFailure:
			l.logger.Warn("cache unreadable, deleting", "error", r.Err)
		case r.Kind == RetrievalFound && !IsFresh(r.Timestamp, l.now()):
			l.logger.Info("cache expired, deleting", "cached_at", r.Timestamp)
		default:
			return
		}

		l.store.DeleteCachedFeed(func(err error) {
			if err != nil {
				l.logger.Warn("failed to delete invalid cache", "error", err)
			}
		})
	})
}

// Release drops every completion that arrives after the call.
func (l *LocalFeedLoader) Release() {
	l.released.Store(true)
}

func toLocal(feed []domain.FeedImage) []LocalFeedImage {
	local := make([]LocalFeedImage, 0, len(feed))
	for _, image := range feed {
		local = append(local, LocalFeedImage{
			ID:          image.ID,
			Description: image.Description,
			Location:    image.Location,
			URL:         image.URL,
		})
	}
	return local
}

func toModels(local []LocalFeedImage) []domain.FeedImage {
	feed := make([]domain.FeedImage, 0, len(local))
	for _, image := range local {
		feed = append(feed, domain.FeedImage{
			ID:          image.ID,
			Description: image.Description,
			Location:    image.Location,
			URL:         image.URL,
		})
	}
	return feed
}
