package sqlstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedcache/internal/cache"
	"feedcache/internal/cache/cachetest"
	"feedcache/internal/storage/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openSQLite(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	return db
}

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	sut := NewStore(openSQLite(t, filepath.Join(t.TempDir(), "cache.db")), discardLogger())
	t.Cleanup(func() { _ = sut.Close() })
	return sut
}

func TestSQLiteStore(t *testing.T) {
	cachetest.Run(t, func(t *testing.T) cache.Store {
		return newSQLiteStore(t)
	})
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := openSQLite(t, filepath.Join(t.TempDir(), "cache.db"))
	defer db.Close()

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))

	var versions []int
	require.NoError(t, db.Select(&versions, "SELECT version FROM schema_migrations ORDER BY version"))
	assert.Equal(t, []int{1, 2}, versions)
}

func TestStore_SnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	feed, timestamp := cachetest.UniqueFeed(), time.Now()

	first := NewStore(openSQLite(t, path), discardLogger())
	require.NoError(t, cachetest.Insert(t, first, feed, timestamp))
	require.NoError(t, first.Close())

	second := NewStore(openSQLite(t, path), discardLogger())
	defer second.Close()

	cachetest.ExpectFound(t, second, feed, timestamp)
}

func TestStore_RetrieveDeliversFailureOnInvalidData(t *testing.T) {
	sut := newSQLiteStore(t)
	_, err := sut.db.Exec("INSERT INTO feed_cache (id, cached_at) VALUES (1, ?)", time.Now().UnixNano())
	require.NoError(t, err)
	_, err = sut.db.Exec("INSERT INTO feed_images (position, id, url) VALUES (0, 'not-a-uuid', 'https://any-url.com')")
	require.NoError(t, err)

	cachetest.ExpectFailure(t, sut)
}

func TestStore_FailedInsertKeepsPreviousSnapshot(t *testing.T) {
	sut := newSQLiteStore(t)
	feed, timestamp := cachetest.UniqueFeed(), time.Now()
	require.NoError(t, cachetest.Insert(t, sut, feed, timestamp))

	_, err := sut.db.Exec(`
		CREATE TRIGGER reject_images BEFORE INSERT ON feed_images
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	assert.Error(t, cachetest.Insert(t, sut, cachetest.UniqueFeed(), time.Now()))

	cachetest.ExpectFound(t, sut, feed, timestamp)
}

func TestStore_OperationsFailAfterClose(t *testing.T) {
	sut := NewStore(openSQLite(t, filepath.Join(t.TempDir(), "cache.db")), discardLogger())
	require.NoError(t, sut.Close())

	assert.ErrorIs(t, cachetest.Insert(t, sut, cachetest.UniqueFeed(), time.Now()), queue.ErrClosed)
	assert.ErrorIs(t, cachetest.Delete(t, sut), queue.ErrClosed)

	r := cachetest.Retrieve(t, sut)
	assert.Equal(t, cache.RetrievalFailure, r.Kind)
	assert.ErrorIs(t, r.Err, queue.ErrClosed)
}

func TestOpenSQLite_FailsOnUnreachablePath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "cache.db"))

	assert.Error(t, err)
}
