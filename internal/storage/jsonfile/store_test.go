package jsonfile

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedcache/internal/cache"
	"feedcache/internal/cache/cachetest"
)

func newTestStore(t *testing.T, path string) *Store {
	store := NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testStorePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "feed.json")
}

func TestStore_Specs(t *testing.T) {
	cachetest.Run(t, func(t *testing.T) cache.Store {
		return newTestStore(t, testStorePath(t))
	})
}

func TestStore_RetrieveDeliversFailureOnInvalidData(t *testing.T) {
	path := testStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("invalid data"), 0o644))
	store := newTestStore(t, path)

	cachetest.ExpectFailure(t, store)
}

func TestStore_RetrieveHasNoSideEffectsOnFailure(t *testing.T) {
	path := testStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("invalid data"), 0o644))
	store := newTestStore(t, path)

	cachetest.ExpectFailure(t, store)
	cachetest.ExpectFailure(t, store)
}

func TestStore_InsertDeliversErrorOnInvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-directory")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	store := newTestStore(t, filepath.Join(blocker, "feed.json"))

	err := cachetest.Insert(t, store, cachetest.UniqueFeed(), time.Now())

	assert.Error(t, err)
}

func TestStore_DeleteDeliversErrorWhenRemovalFails(t *testing.T) {
	path := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o644))
	store := newTestStore(t, path)

	assert.Error(t, cachetest.Delete(t, store))
}

func TestStore_CreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "feed.json")
	store := newTestStore(t, path)
	feed, timestamp := cachetest.UniqueFeed(), time.Now()

	require.NoError(t, cachetest.Insert(t, store, feed, timestamp))

	cachetest.ExpectFound(t, store, feed, timestamp)
}

func TestStore_SharesSnapshotAcrossInstances(t *testing.T) {
	path := testStorePath(t)
	feed, timestamp := cachetest.UniqueFeed(), time.Now()

	require.NoError(t, cachetest.Insert(t, newTestStore(t, path), feed, timestamp))

	cachetest.ExpectFound(t, newTestStore(t, path), feed, timestamp)
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, filepath.Join(dir, "feed.json"))

	require.NoError(t, cachetest.Insert(t, store, cachetest.UniqueFeed(), time.Now()))
	require.NoError(t, cachetest.Insert(t, store, cachetest.UniqueFeed(), time.Now()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "feed.json", entries[0].Name())
}

func TestStore_RetrievedTimestampKeepsFreshness(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	timestamp := time.Date(2024, time.March, 8, 9, 0, 0, 0, loc)
	store := newTestStore(t, testStorePath(t))
	require.NoError(t, cachetest.Insert(t, store, cachetest.UniqueFeed(), timestamp))

	r := cachetest.Retrieve(t, store)
	require.Equal(t, cache.RetrievalFound, r.Kind)

	for _, now := range []time.Time{
		time.Date(2024, time.March, 15, 8, 59, 0, 0, loc),
		time.Date(2024, time.March, 15, 9, 30, 0, 0, loc),
	} {
		assert.Equal(t, cache.IsFresh(timestamp, now), cache.IsFresh(r.Timestamp, now), "now %v", now)
	}
}
