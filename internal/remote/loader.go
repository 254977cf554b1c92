package remote

import (
	"fmt"
	"sync/atomic"

	"feedcache/internal/domain"
)

// Loader loads a feed from a single URL.
type Loader struct {
	url      string
	client   HTTPClient
	released atomic.Bool
}

var _ domain.FeedLoader = (*Loader)(nil)

// New returns a Loader for url. No request is made until Load.
func New(url string, client HTTPClient) *Loader {
	return &Loader{
		url:    url,
		client: client,
	}
}

// Load issues one request per call. Repeated calls are not coalesced.
func (l *Loader) Load(completion func([]domain.FeedImage, error)) {
	l.client.Get(l.url, func(resp *Response, err error) {
		if l.released.Load() {
			return
		}
		if err != nil {
			completion(nil, fmt.Errorf("%w: %w", ErrConnectivity, err))
			return
		}

		if resp == nil {
			completion(nil, ErrInvalidData)
			return
		}

		items, err := Map(resp.Body, resp.StatusCode)
		if err != nil {
			completion(nil, err)
			return
		}
		completion(toModels(items), nil)
	})
}

// Release drops every completion that arrives after the call.
func (l *Loader) Release() {
	l.released.Store(true)
}

func toModels(items []RemoteFeedItem) []domain.FeedImage {
	images := make([]domain.FeedImage, 0, len(items))
	for _, item := range items {
		images = append(images, domain.FeedImage{
			ID:          item.ID,
			Description: item.Description,
			Location:    item.Location,
			URL:         item.Image,
		})
	}
	return images
}
