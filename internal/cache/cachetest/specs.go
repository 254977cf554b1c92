// Package cachetest holds the behaviour every cache.Store implementation
// must show. Backends call Run from their own tests.
package cachetest

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedcache/internal/cache"
)

const timeout = 5 * time.Second

// Run executes the store specs. newStore must return an empty store; it is
// called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) cache.Store) {
	t.Run("RetrieveDeliversEmptyOnEmptyCache", func(t *testing.T) {
		sut := newStore(t)

		ExpectEmpty(t, sut)
	})

	t.Run("RetrieveHasNoSideEffectsOnEmptyCache", func(t *testing.T) {
		sut := newStore(t)

		ExpectEmpty(t, sut)
		ExpectEmpty(t, sut)
	})

	t.Run("RetrieveDeliversFoundValuesOnNonEmptyCache", func(t *testing.T) {
		sut := newStore(t)
		feed, timestamp := UniqueFeed(), time.Now()

		require.NoError(t, Insert(t, sut, feed, timestamp))

		ExpectFound(t, sut, feed, timestamp)
	})

	t.Run("RetrieveHasNoSideEffectsOnNonEmptyCache", func(t *testing.T) {
		sut := newStore(t)
		feed, timestamp := UniqueFeed(), time.Now()

		require.NoError(t, Insert(t, sut, feed, timestamp))

		ExpectFound(t, sut, feed, timestamp)
		ExpectFound(t, sut, feed, timestamp)
	})

	t.Run("RetrievePreservesOrderAndOptionals", func(t *testing.T) {
		sut := newStore(t)
		feed := append(UniqueFeed(), cache.LocalFeedImage{ID: uuid.New(), URL: "https://any-url.com/bare"})
		feed = append(feed, UniqueFeed()...)
		timestamp := time.Date(2024, time.January, 2, 3, 4, 5, 6, time.UTC)

		require.NoError(t, Insert(t, sut, feed, timestamp))

		ExpectFound(t, sut, feed, timestamp)
	})

	t.Run("RetrieveDeliversEmptyFeedSnapshot", func(t *testing.T) {
		sut := newStore(t)
		timestamp := time.Now()

		require.NoError(t, Insert(t, sut, []cache.LocalFeedImage{}, timestamp))

		r := Retrieve(t, sut)
		require.Equal(t, cache.RetrievalFound, r.Kind, "error: %v", r.Err)
		assert.Empty(t, r.Feed)
		assert.True(t, timestamp.Equal(r.Timestamp))
	})

	t.Run("InsertDeliversNoErrorOnEmptyCache", func(t *testing.T) {
		sut := newStore(t)

		assert.NoError(t, Insert(t, sut, UniqueFeed(), time.Now()))
	})

	t.Run("InsertDeliversNoErrorOnNonEmptyCache", func(t *testing.T) {
		sut := newStore(t)

		require.NoError(t, Insert(t, sut, UniqueFeed(), time.Now()))

		assert.NoError(t, Insert(t, sut, UniqueFeed(), time.Now()))
	})

	t.Run("InsertOverridesPreviouslyInsertedCacheValues", func(t *testing.T) {
		sut := newStore(t)
		require.NoError(t, Insert(t, sut, UniqueFeed(), time.Now()))

		latestFeed, latestTimestamp := UniqueFeed(), time.Now()
		require.NoError(t, Insert(t, sut, latestFeed, latestTimestamp))

		ExpectFound(t, sut, latestFeed, latestTimestamp)
	})

	t.Run("DeleteDeliversNoErrorOnEmptyCache", func(t *testing.T) {
		sut := newStore(t)

		assert.NoError(t, Delete(t, sut))
	})

	t.Run("DeleteHasNoSideEffectsOnEmptyCache", func(t *testing.T) {
		sut := newStore(t)

		require.NoError(t, Delete(t, sut))

		ExpectEmpty(t, sut)
	})

	t.Run("DeleteDeliversNoErrorOnNonEmptyCache", func(t *testing.T) {
		sut := newStore(t)
		require.NoError(t, Insert(t, sut, UniqueFeed(), time.Now()))

		assert.NoError(t, Delete(t, sut))
	})

	t.Run("DeleteEmptiesPreviouslyInsertedCache", func(t *testing.T) {
		sut := newStore(t)
		require.NoError(t, Insert(t, sut, UniqueFeed(), time.Now()))

		require.NoError(t, Delete(t, sut))

		ExpectEmpty(t, sut)
	})

	t.Run("SideEffectsRunSerially", func(t *testing.T) {
		sut := newStore(t)
		lastFeed, lastTimestamp := UniqueFeed(), time.Now()

		var (
			mu    sync.Mutex
			order []int
			wg    sync.WaitGroup
		)
		record := func(op int) {
			mu.Lock()
			order = append(order, op)
			mu.Unlock()
			wg.Done()
		}

		wg.Add(3)
		sut.Insert(UniqueFeed(), time.Now(), func(error) { record(1) })
		sut.DeleteCachedFeed(func(error) { record(2) })
		sut.Insert(lastFeed, lastTimestamp, func(error) { record(3) })
		wait(t, &wg)

		assert.Equal(t, []int{1, 2, 3}, order)
		ExpectFound(t, sut, lastFeed, lastTimestamp)
	})

	t.Run("ConcurrentRetrievesNeverObserveTornSnapshots", func(t *testing.T) {
		sut := newStore(t)
		first, second := UniqueFeed(), UniqueFeed()
		firstTimestamp := time.Now()
		secondTimestamp := firstTimestamp.Add(time.Minute)

		var (
			mu      sync.Mutex
			results []cache.Retrieval
			wg      sync.WaitGroup
		)
		collect := func(r cache.Retrieval) {
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			wg.Done()
		}

		wg.Add(1)
		sut.Insert(first, firstTimestamp, func(error) { wg.Done() })
		for i := 0; i < 20; i++ {
			wg.Add(2)
			sut.Retrieve(collect)
			if i%2 == 0 {
				sut.Insert(second, secondTimestamp, func(error) { wg.Done() })
			} else {
				sut.Insert(first, firstTimestamp, func(error) { wg.Done() })
			}
		}
		wait(t, &wg)

		require.Len(t, results, 20)
		for _, r := range results {
			require.Equal(t, cache.RetrievalFound, r.Kind, "error: %v", r.Err)
			switch {
			case r.Timestamp.Equal(firstTimestamp):
				assert.Equal(t, first, r.Feed)
			case r.Timestamp.Equal(secondTimestamp):
				assert.Equal(t, second, r.Feed)
			default:
				t.Fatalf("unexpected timestamp %v", r.Timestamp)
			}
		}
	})
}

// UniqueFeed returns two images with unique identifiers.
func UniqueFeed() []cache.LocalFeedImage {
	return []cache.LocalFeedImage{uniqueImage(), uniqueImage()}
}

func uniqueImage() cache.LocalFeedImage {
	description := "any description"
	location := "any location"
	return cache.LocalFeedImage{
		ID:          uuid.New(),
		Description: &description,
		Location:    &location,
		URL:         "https://any-url.com/" + uuid.NewString(),
	}
}

// Insert blocks until the store reports the insertion.
func Insert(t *testing.T, sut cache.Store, feed []cache.LocalFeedImage, timestamp time.Time) error {
	t.Helper()
	done := make(chan error, 1)
	sut.Insert(feed, timestamp, func(err error) { done <- err })

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		t.Fatal("timed out waiting for insertion")
		return nil
	}
}

// Delete blocks until the store reports the deletion.
func Delete(t *testing.T, sut cache.Store) error {
	t.Helper()
	done := make(chan error, 1)
	sut.DeleteCachedFeed(func(err error) { done <- err })

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		t.Fatal("timed out waiting for deletion")
		return nil
	}
}

// Retrieve blocks until the store delivers a retrieval.
func Retrieve(t *testing.T, sut cache.Store) cache.Retrieval {
	t.Helper()
	done := make(chan cache.Retrieval, 1)
	sut.Retrieve(func(r cache.Retrieval) { done <- r })

	select {
	case r := <-done:
		return r
	case <-time.After(timeout):
		t.Fatal("timed out waiting for retrieval")
		return cache.Retrieval{}
	}
}

func ExpectEmpty(t *testing.T, sut cache.Store) {
	t.Helper()
	r := Retrieve(t, sut)
	assert.Equal(t, cache.RetrievalEmpty, r.Kind, "error: %v", r.Err)
}

func ExpectFound(t *testing.T, sut cache.Store, feed []cache.LocalFeedImage, timestamp time.Time) {
	t.Helper()
	r := Retrieve(t, sut)
	require.Equal(t, cache.RetrievalFound, r.Kind, "error: %v", r.Err)
	assert.Equal(t, feed, r.Feed)
	assert.True(t, timestamp.Equal(r.Timestamp), "timestamp %v, want %v", r.Timestamp, timestamp)
}

func ExpectFailure(t *testing.T, sut cache.Store) {
	t.Helper()
	r := Retrieve(t, sut)
	assert.Equal(t, cache.RetrievalFailure, r.Kind)
	assert.Error(t, r.Err)
}

func wait(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for store operations")
	}
}
