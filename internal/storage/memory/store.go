package memory

import (
	"log/slog"
	"time"

	"feedcache/internal/cache"
	"feedcache/internal/storage/queue"
)

type snapshot struct {
	feed      []cache.LocalFeedImage
	timestamp time.Time
}

// Store keeps the cached feed in process memory.
type Store struct {
	queue  *queue.Queue
	cache  *snapshot
	logger *slog.Logger
}

var _ cache.Store = (*Store)(nil)

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		queue:  queue.New(8),
		logger: logger.With("component", "memory_store"),
	}
}

func (s *Store) DeleteCachedFeed(completion func(error)) {
	err := s.queue.Barrier(func() {
		s.cache = nil
		completion(nil)
	})
	if err != nil {
		completion(err)
	}
}

func (s *Store) Insert(feed []cache.LocalFeedImage, timestamp time.Time, completion func(error)) {
	stored := append([]cache.LocalFeedImage(nil), feed...)
	err := s.queue.Barrier(func() {
		s.cache = &snapshot{feed: stored, timestamp: timestamp}
		s.logger.Debug("cache replaced", "images", len(stored))
		completion(nil)
	})
	if err != nil {
		completion(err)
	}
}

func (s *Store) Retrieve(completion func(cache.Retrieval)) {
	err := s.queue.Async(func() {
		if s.cache == nil {
			completion(cache.Empty())
			return
		}
		feed := make([]cache.LocalFeedImage, len(s.cache.feed))
		copy(feed, s.cache.feed)
		completion(cache.Found(feed, s.cache.timestamp))
	})
	if err != nil {
		completion(cache.Failed(err))
	}
}

// Close waits for scheduled operations and rejects new ones.
func (s *Store) Close() error {
	s.queue.Close()
	return nil
}
