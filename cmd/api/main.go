package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hostel/internal/activity"
	"hostel/internal/auth"
	"hostel/internal/config"
	"hostel/internal/handler"
	"hostel/internal/hostel"
	"hostel/internal/httpmiddleware"
	"hostel/internal/logger"
	"hostel/internal/metrics"
	"hostel/internal/queue"
	"hostel/internal/recordstore"
	"hostel/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := runHTTP(cfg, zl); err != nil {
		zl.Fatalw("http server failed", "error", err)
	}
}

func runHTTP(cfg config.App, zl *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cols := recordstore.Open(cfg.DataDir)
	if err := cols.EnsureAll(); err != nil {
		return err
	}
	// A corrupt collection only fails the requests that touch it.
	if err := cols.Verify(); err != nil {
		zl.Warnw("collection check failed, affected endpoints will return 500", "error", err)
	}

	health := map[string]handler.HealthCheck{
		"store": func(context.Context) bool { return cols.Check() == nil },
	}

	var activityRepo *activity.Repository
	if cfg.DatabaseURL != "" {
		db, err := store.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			zl.Warnw("activity database not reachable, falling back to log sink", "error", err)
		} else {
			defer db.Close()
			activityRepo = activity.NewRepository(db.Client)
			if err := activityRepo.Migrate(ctx); err != nil {
				return err
			}
			health["db"] = db.Healthy
		}
	}

	var sink activity.Sink = activity.NewLogSink(zl)
	if activityRepo != nil {
		sink = activityRepo
	}

	var pub hostel.Publisher
	switch cfg.QueueBackend {
	case "redis":
		rdb := store.NewRedis(cfg.RedisAddr)
		defer rdb.Close()
		pub = queue.NewRedisQueue(rdb.Client, queue.DefaultKey)
		health["redis"] = rdb.Healthy
	case "memory":
		q := queue.NewInMemory(256)
		pub = q
		go func() {
			if err := activity.Consume(ctx, q, sink, zl); err != nil {
				zl.Errorw("activity consumer stopped", "error", err)
			}
		}()
	case "none", "":
	default:
		zl.Warnw("unknown queue backend, activity disabled", "backend", cfg.QueueBackend)
	}

	reg := prometheus.DefaultRegisterer
	m := metrics.New(reg)
	svc := hostel.NewService(cols, pub, m, zl)

	opts := handler.Options{
		Service: svc,
		Verifier: auth.NewStaticVerifier(map[auth.Role]auth.Credentials{
			auth.RoleStudent: {Username: cfg.StudentUsername, Password: cfg.StudentPassword},
			auth.RoleWarden:  {Username: cfg.WardenUsername, Password: cfg.WardenPassword},
		}),
		Pages: handler.Pages{PublicDir: cfg.PublicDir, ViewsDir: cfg.ViewsDir},
		Session: handler.Session{
			SigningKey: cfg.JWTSigningKey,
			Issuer:     cfg.JWTIssuer,
			TTL:        cfg.SessionTTL,
			Secure:     cfg.SecureCookie,
		},
		Metrics: m,
		Health:  health,
		Log:     zl,
	}
	if activityRepo != nil {
		opts.Activity = activityRepo
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.New(opts).Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Infow("server started", "url", "http://localhost:"+cfg.HTTPPort, "data_dir", cfg.DataDir, "queue", cfg.QueueBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	zl.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warnw("server forced shutdown", "error", err)
	}

	zl.Info("server exited")
	return nil
}
