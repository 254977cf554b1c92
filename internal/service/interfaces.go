package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"feedcache/internal/domain"
)

type FeedLoader interface {
	Load(completion func([]domain.FeedImage, error))
}

type FeedCache interface {
	Load(completion func([]domain.FeedImage, error))
	Save(feed []domain.FeedImage, completion func(error))
	ValidateCache()
}

type Publisher interface {
	Publish(ctx context.Context, snapshot *domain.FeedSnapshot) error
	Close() error
}

type Metrics interface {
	ObserveSync(stats *domain.SyncStats, err error)
}
