package cache

import (
	"time"

	"github.com/google/uuid"
)

// LocalFeedImage is the cache's own representation of a feed entry.
type LocalFeedImage struct {
	ID          uuid.UUID `json:"id"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	URL         string    `json:"url"`
}

// RetrievalKind tags the outcome of a cache read.
type RetrievalKind int

const (
	RetrievalEmpty RetrievalKind = iota
	RetrievalFound
	RetrievalFailure
)

func (k RetrievalKind) String() string {
	switch k {
	case RetrievalEmpty:
		return "empty"
	case RetrievalFound:
		return "found"
	case RetrievalFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Retrieval is the result of Store.Retrieve. Feed and Timestamp are set only
// for RetrievalFound, Err only for RetrievalFailure.
type Retrieval struct {
	Kind      RetrievalKind
	Feed      []LocalFeedImage
	Timestamp time.Time
	Err       error
}

func Empty() Retrieval {
	return Retrieval{Kind: RetrievalEmpty}
}

func Found(feed []LocalFeedImage, timestamp time.Time) Retrieval {
	return Retrieval{Kind: RetrievalFound, Feed: feed, Timestamp: timestamp}
}

func Failed(err error) Retrieval {
	return Retrieval{Kind: RetrievalFailure, Err: err}
}

// Store persists at most one feed snapshot.
//
// Every method returns immediately and reports through its completion, which
// may run on any goroutine. Deletes and inserts take effect in the order they
// were issued; retrieves may run concurrently with one another but never
// observe a write in progress.
type Store interface {
	DeleteCachedFeed(completion func(error))
	Insert(feed []LocalFeedImage, timestamp time.Time, completion func(error))
	Retrieve(completion func(Retrieval))
}
