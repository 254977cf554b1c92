package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"feedcache/internal/cache"
	"feedcache/internal/config"
	"feedcache/internal/metrics"
	"feedcache/internal/publisher"
	"feedcache/internal/remote"
	"feedcache/internal/scheduler"
	"feedcache/internal/service"
	"feedcache/internal/storage/jsonfile"
	"feedcache/internal/storage/memory"
	"feedcache/internal/storage/sqlstore"
	"feedcache/internal/transport/httpclient"
	"feedcache/internal/transport/rest"
)

type store interface {
	cache.Store
	io.Closer
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("feedsync stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cacheStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open cache store: %w", err)
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			logger.Error("failed to close cache store", "error", err)
		}
	}()
	logger.Info("cache store ready", "backend", cfg.Cache.Backend)

	collector := metrics.NewCollector("feedcache")

	client := httpclient.New(httpclient.Config{
		Timeout:        cfg.HTTP.Timeout,
		UserAgent:      cfg.HTTP.UserAgent,
		MaxAttempts:    cfg.HTTP.Retry.MaxAttempts,
		InitialBackoff: cfg.HTTP.Retry.InitialBackoff,
		MaxBackoff:     cfg.HTTP.Retry.MaxBackoff,
		Breaker: httpclient.BreakerConfig{
			MaxRequests:      cfg.HTTP.Breaker.MaxRequests,
			Interval:         cfg.HTTP.Breaker.Interval,
			Timeout:          cfg.HTTP.Breaker.Timeout,
			FailureThreshold: cfg.HTTP.Breaker.FailureThreshold,
			MinRequests:      cfg.HTTP.Breaker.MinRequests,
		},
	}, logger)

	remoteLoader := remote.New(cfg.Feed.URL, client)
	defer remoteLoader.Release()

	localLoader := cache.NewLocalFeedLoader(cacheStore, time.Now, logger)
	defer localLoader.Release()

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
			FeedURL:    cfg.Feed.URL,
		}, logger)
		if err != nil {
			return fmt.Errorf("connect publisher: %w", err)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	syncService := service.NewSyncService(cfg.Feed.URL, remoteLoader, localLoader, pub, collector, logger)
	sched := scheduler.NewScheduler(syncService, cfg.Sync.Interval, cfg.Sync.Timeout, logger)

	logger.Info("starting feed syncer",
		"feed_url", cfg.Feed.URL,
		"interval", cfg.Sync.Interval,
		"publisher", cfg.RabbitMQ.Enabled,
		"server", cfg.Server.Address,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scheduler: %w", err)
		}
		return nil
	})
	if cfg.Server.Address != "" {
		router := rest.NewRouter(localLoader, collector, logger)
		server := rest.NewServer(cfg.Server.Address, router.Setup(), logger)
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store, error) {
	switch cfg.Cache.Backend {
	case config.BackendMemory:
		return memory.NewStore(logger), nil
	case config.BackendFile:
		return jsonfile.NewStore(cfg.Cache.FilePath, logger), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		db, err := sqlstore.OpenSQLite(ctx, cfg.Cache.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlstore.NewStore(db, logger), nil
	case config.BackendPostgres:
		db, err := sqlstore.OpenPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		return sqlstore.NewStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
