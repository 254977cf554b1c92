package remote

import "github.com/google/uuid"

// RemoteFeedItem is the wire representation of a feed entry.
type RemoteFeedItem struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	Image       string    `json:"image" validate:"required,url"`
}
