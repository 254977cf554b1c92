// Package jsonfile stores the cached feed as a JSON document on disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"feedcache/internal/cache"
	"feedcache/internal/storage/queue"
)

type document struct {
	Feed      []cache.LocalFeedImage `json:"feed"`
	Timestamp time.Time              `json:"timestamp"`
}

// Store persists the snapshot at a single file path. Writes go through a
// temporary file that is renamed over the target, so readers only ever see
// a complete document.
type Store struct {
	path   string
	queue  *queue.Queue
	logger *slog.Logger
}

var _ cache.Store = (*Store)(nil)

func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		queue:  queue.New(8),
		logger: logger.With("component", "jsonfile_store", "path", path),
	}
}

func (s *Store) Retrieve(completion func(cache.Retrieval)) {
	err := s.queue.Async(func() {
		completion(s.retrieve())
	})
	if err != nil {
		completion(cache.Failed(err))
	}
}

func (s *Store) retrieve() cache.Retrieval {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cache.Empty()
	}
	if err != nil {
		return cache.Failed(fmt.Errorf("read cache file: %w", err))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return cache.Failed(fmt.Errorf("decode cache file: %w", err))
	}
	if doc.Feed == nil {
		doc.Feed = []cache.LocalFeedImage{}
	}
	return cache.Found(doc.Feed, doc.Timestamp)
}

func (s *Store) Insert(feed []cache.LocalFeedImage, timestamp time.Time, completion func(error)) {
	err := s.queue.Barrier(func() {
		completion(s.insert(document{Feed: feed, Timestamp: timestamp}))
	})
	if err != nil {
		completion(err)
	}
}

func (s *Store) insert(doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".feedcache-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}

	s.logger.Debug("cache written", "images", len(doc.Feed), "bytes", len(data))
	return nil
}

func (s *Store) DeleteCachedFeed(completion func(error)) {
	err := s.queue.Barrier(func() {
		completion(s.delete())
	})
	if err != nil {
		completion(err)
	}
}

func (s *Store) delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove cache file: %w", err)
	}
	s.logger.Debug("cache deleted")
	return nil
}

// Close waits for scheduled operations and rejects new ones.
func (s *Store) Close() error {
	s.queue.Close()
	return nil
}
