package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderStub struct {
	complete bool
	feed     []FeedImage
	err      error
}

func (l loaderStub) Load(completion func([]FeedImage, error)) {
	if l.complete {
		go completion(l.feed, l.err)
	}
}

type saverStub struct {
	complete bool
	err      error
	saved    chan []FeedImage
}

func (s saverStub) Save(feed []FeedImage, completion func(error)) {
	s.saved <- feed
	if s.complete {
		go completion(s.err)
	}
}

func TestAwaitLoad_DeliversFeed(t *testing.T) {
	feed := []FeedImage{{ID: uuid.New(), URL: "https://any-url.com"}}

	got, err := AwaitLoad(context.Background(), loaderStub{complete: true, feed: feed})

	require.NoError(t, err)
	assert.Equal(t, feed, got)
}

func TestAwaitLoad_DeliversError(t *testing.T) {
	loadErr := errors.New("load failed")

	got, err := AwaitLoad(context.Background(), loaderStub{complete: true, err: loadErr})

	assert.ErrorIs(t, err, loadErr)
	assert.Nil(t, got)
}

func TestAwaitLoad_ReturnsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := AwaitLoad(ctx, loaderStub{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitSave_PassesFeedAndDeliversResult(t *testing.T) {
	feed := []FeedImage{{ID: uuid.New(), URL: "https://any-url.com"}}
	saveErr := errors.New("save failed")
	saver := saverStub{complete: true, err: saveErr, saved: make(chan []FeedImage, 1)}

	err := AwaitSave(context.Background(), saver, feed)

	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, feed, <-saver.saved)
}

func TestAwaitSave_ReturnsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := AwaitSave(ctx, saverStub{saved: make(chan []FeedImage, 1)}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
