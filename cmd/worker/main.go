package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"hostel/internal/activity"
	"hostel/internal/config"
	"hostel/internal/logger"
	"hostel/internal/queue"
	"hostel/internal/store"
)

// Worker drains activity events from the Redis queue into Postgres, or into
// the log when DATABASE_URL is unset.
func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatalw("worker failed", "error", err)
	}
}

func run(ctx context.Context, cfg config.App, zl *zap.SugaredLogger) error {
	rdb := store.NewRedis(cfg.RedisAddr)
	defer rdb.Close()
	if !rdb.Healthy(ctx) {
		zl.Warnw("redis not reachable yet, will keep retrying", "addr", cfg.RedisAddr)
	}

	var sink activity.Sink = activity.NewLogSink(zl)
	if cfg.DatabaseURL != "" {
		db, err := store.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := activity.NewRepository(db.Client)
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		sink = repo
		zl.Info("recording activity to postgres")
	}

	q := queue.NewRedisQueue(rdb.Client, queue.DefaultKey)
	zl.Infow("worker started, waiting for messages", "queue", queue.DefaultKey)
	if err := activity.Consume(ctx, q, sink, zl); err != nil {
		return err
	}
	zl.Info("worker stopped")
	return nil
}
