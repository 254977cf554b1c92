package domain

import "context"

// FeedLoader delivers a feed asynchronously. The completion may run on any
// goroutine and is invoked at most once.
type FeedLoader interface {
	Load(completion func([]FeedImage, error))
}

// FeedSaver persists a feed asynchronously.
type FeedSaver interface {
	Save(feed []FeedImage, completion func(error))
}

type loadResult struct {
	feed []FeedImage
	err  error
}

// AwaitLoad blocks until loader completes or ctx is done.
func AwaitLoad(ctx context.Context, loader FeedLoader) ([]FeedImage, error) {
	done := make(chan loadResult, 1)
	loader.Load(func(feed []FeedImage, err error) {
		done <- loadResult{feed: feed, err: err}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.feed, res.err
	}
}

// AwaitSave blocks until saver completes or ctx is done.
func AwaitSave(ctx context.Context, saver FeedSaver, feed []FeedImage) error {
	done := make(chan error, 1)
	saver.Save(feed, func(err error) {
		done <- err
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
