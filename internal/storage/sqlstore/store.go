// Package sqlstore keeps the cached feed in an SQL database. SQLite and
// PostgreSQL share the same schema and queries.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedcache/internal/cache"
	"feedcache/internal/storage/queue"
)

const defaultOpTimeout = 30 * time.Second

type imageRow struct {
	Position    int       `db:"position"`
	ID          uuid.UUID `db:"id"`
	Description *string   `db:"description"`
	Location    *string   `db:"location"`
	URL         string    `db:"url"`
}

// Store holds at most one snapshot: a single feed_cache row plus its
// images keyed by position. Replacing a snapshot happens in one transaction.
type Store struct {
	db        *sqlx.DB
	tm        *TransactionManager
	queue     *queue.Queue
	opTimeout time.Duration
	logger    *slog.Logger
}

var _ cache.Store = (*Store)(nil)

// NewStore takes ownership of db; Close closes it.
func NewStore(db *sqlx.DB, logger *slog.Logger) *Store {
	return &Store{
		db:        db,
		tm:        NewTransactionManager(db),
		queue:     queue.New(8),
		opTimeout: defaultOpTimeout,
		logger:    logger.With("component", "sql_store", "driver", db.DriverName()),
	}
}

func (s *Store) DeleteCachedFeed(completion func(error)) {
	err := s.queue.Barrier(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
		defer cancel()
		completion(s.tm.WithTransaction(ctx, s.deleteAll))
	})
	if err != nil {
		completion(err)
	}
}

func (s *Store) Insert(feed []cache.LocalFeedImage, timestamp time.Time, completion func(error)) {
	rows := make([]imageRow, len(feed))
	for i, image := range feed {
		rows[i] = imageRow{
			Position:    i,
			ID:          image.ID,
			Description: image.Description,
			Location:    image.Location,
			URL:         image.URL,
		}
	}

	err := s.queue.Barrier(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
		defer cancel()
		err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
			return s.insert(ctx, rows, timestamp)
		})
		if err == nil {
			s.logger.Debug("cache replaced", "images", len(rows))
		}
		completion(err)
	})
	if err != nil {
		completion(err)
	}
}

func (s *Store) Retrieve(completion func(cache.Retrieval)) {
	err := s.queue.Async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
		defer cancel()

		var result cache.Retrieval
		err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
			r, err := s.retrieve(ctx)
			result = r
			return err
		})
		if err != nil {
			completion(cache.Failed(err))
			return
		}
		completion(result)
	})
	if err != nil {
		completion(cache.Failed(err))
	}
}

// Close waits for scheduled operations, then closes the database.
func (s *Store) Close() error {
	s.queue.Close()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func (s *Store) deleteAll(ctx context.Context) error {
	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, "DELETE FROM feed_images"); err != nil {
		return fmt.Errorf("delete feed images: %w", err)
	}
	if _, err := exec.ExecContext(ctx, "DELETE FROM feed_cache"); err != nil {
		return fmt.Errorf("delete feed cache: %w", err)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, rows []imageRow, timestamp time.Time) error {
	if err := s.deleteAll(ctx); err != nil {
		return err
	}

	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx,
		exec.Rebind("INSERT INTO feed_cache (id, cached_at) VALUES (1, ?)"),
		timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert feed cache: %w", err)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO feed_images (position, id, description, location, url)
		VALUES (:position, :id, :description, :location, :url)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, rows); err != nil {
		return fmt.Errorf("insert feed images: %w", err)
	}
	return nil
}

func (s *Store) retrieve(ctx context.Context) (cache.Retrieval, error) {
	exec := GetExecutor(ctx, s.db)

	var cachedAt int64
	err := sqlx.GetContext(ctx, exec, &cachedAt, "SELECT cached_at FROM feed_cache WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return cache.Empty(), nil
	}
	if err != nil {
		return cache.Retrieval{}, fmt.Errorf("select feed cache: %w", err)
	}

	var rows []imageRow
	err = sqlx.SelectContext(ctx, exec, &rows, `
		SELECT position, id, description, location, url
		FROM feed_images
		ORDER BY position`)
	if err != nil {
		return cache.Retrieval{}, fmt.Errorf("select feed images: %w", err)
	}

	feed := make([]cache.LocalFeedImage, len(rows))
	for i, row := range rows {
		feed[i] = cache.LocalFeedImage{
			ID:          row.ID,
			Description: row.Description,
			Location:    row.Location,
			URL:         row.URL,
		}
	}
	return cache.Found(feed, time.Unix(0, cachedAt)), nil
}
