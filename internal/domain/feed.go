package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedImage is a single entry of a remote feed.
type FeedImage struct {
	ID          uuid.UUID `json:"id"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	URL         string    `json:"url"`
}

// FeedSnapshot is a feed together with the time it was cached.
type FeedSnapshot struct {
	Images   []FeedImage `json:"images"`
	CachedAt time.Time   `json:"cached_at"`
}
