package cache

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedcache/internal/domain"
)

type messageKind int

const (
	deleteCachedFeed messageKind = iota
	insert
	retrieve
)

type storeMessage struct {
	kind      messageKind
	feed      []LocalFeedImage
	timestamp time.Time
}

type storeSpy struct {
	mu         sync.Mutex
	messages   []storeMessage
	deletions  []func(error)
	insertions []func(error)
	retrievals []func(Retrieval)
}

func (s *storeSpy) DeleteCachedFeed(completion func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletions = append(s.deletions, completion)
	s.messages = append(s.messages, storeMessage{kind: deleteCachedFeed})
}

func (s *storeSpy) Insert(feed []LocalFeedImage, timestamp time.Time, completion func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertions = append(s.insertions, completion)
	s.messages = append(s.messages, storeMessage{kind: insert, feed: feed, timestamp: timestamp})
}

func (s *storeSpy) Retrieve(completion func(Retrieval)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retrievals = append(s.retrievals, completion)
	s.messages = append(s.messages, storeMessage{kind: retrieve})
}

func (s *storeSpy) received() []storeMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storeMessage(nil), s.messages...)
}

func (s *storeSpy) completeDeletion(err error, index int) {
	s.mu.Lock()
	completion := s.deletions[index]
	s.mu.Unlock()
	completion(err)
}

func (s *storeSpy) completeInsertion(err error, index int) {
	s.mu.Lock()
	completion := s.insertions[index]
	s.mu.Unlock()
	completion(err)
}

func (s *storeSpy) completeRetrieval(r Retrieval, index int) {
	s.mu.Lock()
	completion := s.retrievals[index]
	s.mu.Unlock()
	completion(r)
}

var errAny = errors.New("any error")

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 12, 30, 0, 0, time.UTC)
}

func uniqueImage() domain.FeedImage {
	description := "any description"
	location := "any location"
	return domain.FeedImage{
		ID:          uuid.New(),
		Description: &description,
		Location:    &location,
		URL:         "https://any-url.com/" + uuid.NewString(),
	}
}

func uniqueImageFeed() ([]domain.FeedImage, []LocalFeedImage) {
	models := []domain.FeedImage{uniqueImage(), uniqueImage()}
	return models, toLocal(models)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// nonExpired is just inside the freshness window that ends at now.
func nonExpired(now time.Time) time.Time {
	return now.AddDate(0, 0, -MaxAge).Add(time.Second)
}

func expiration(now time.Time) time.Time {
	return now.AddDate(0, 0, -MaxAge)
}

func expired(now time.Time) time.Time {
	return now.AddDate(0, 0, -MaxAge).Add(-time.Second)
}
