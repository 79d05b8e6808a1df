package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/5w1tchy/library-api/internal/api/middlewares"
	"github.com/5w1tchy/library-api/internal/api/router"
	"github.com/5w1tchy/library-api/internal/config"
	"github.com/5w1tchy/library-api/internal/logging"
	"github.com/5w1tchy/library-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/library-api/internal/service"
	storeauthors "github.com/5w1tchy/library-api/internal/store/authors"
	storebooks "github.com/5w1tchy/library-api/internal/store/books"
	"github.com/5w1tchy/library-api/internal/store/dbx"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := sqlconnect.ConnectDB(ctx, sqlconnect.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := dbx.EnsureSchema(ctx, db, dialect); err != nil {
		return err
	}
	logger.Info("database ready", "driver", dialect.Name)

	authorSvc := service.NewAuthors(storeauthors.New(db, dialect))
	bookSvc := service.NewBooks(storebooks.New(db, dialect))

	limiter, closeRedis, err := rateLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRedis()

	handler := mw.Apply(
		router.Router(db, authorSvc, bookSvc),
		mw.RequestID,
		mw.AccessLog(logger),
		mw.Recovery,
		mw.Cors(cfg.CORSOrigins),
		mw.ResponseTime,
		mw.SecurityHeaders(cfg.StrictSecurity),
		mw.HPP(mw.DefaultHPPOptions()),
		mw.BodySizeLimit(cfg.MaxBodySize),
		limiter,
		mw.Compression,
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "tls", cfg.TLS())
		if cfg.TLS() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// rateLimiter returns the Redis token bucket when Redis is configured and
// reachable at startup, and the in-process limiter otherwise.
func rateLimiter(ctx context.Context, cfg config.Config, logger *slog.Logger) (mw.Middleware, func(), error) {
	local := mw.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb"))
	if !cfg.RedisConfigured() {
		logger.Info("rate limiter: in-process", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
		return local.Middleware, func() {}, nil
	}

	var opt *redis.Options
	if cfg.RedisURL != "" {
		// e.g. rediss://default:<token>@host:port
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		opt = parsed
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
	} else {
		opt = &redis.Options{
			Addr:         cfg.RedisAddr,
			Username:     cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-process rate limiter", "err", err)
		_ = rdb.Close()
		return local.Middleware, func() {}, nil
	}

	logger.Info("rate limiter: redis", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	tb := mw.NewRedisTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb"))
	return tb.Middleware, func() { _ = rdb.Close() }, nil
}
