package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/metacatalog/timefmt/internal/config"
	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/grpcapi"
	"github.com/metacatalog/timefmt/internal/httpapi"
	"github.com/metacatalog/timefmt/internal/locale"
	"github.com/metacatalog/timefmt/internal/redis"
	"github.com/metacatalog/timefmt/internal/server"
)

// setup is the timefmtd composition root. It builds the formatter, the
// optional Redis preference store and the locale resolver, then registers
// the HTTP routes and the gRPC service.
func setup(ctx context.Context, deps server.SetupDeps) (func(context.Context) error, error) {
	cfg := deps.Config
	logger := deps.Logger

	// 1. Formatter defaults.
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timefmtd setup: %w", err)
	}
	formatter := datetime.New(
		datetime.WithClock(domain.RealClock{}),
		datetime.WithLocation(loc),
		datetime.WithLocale(cfg.DefaultLocale()),
	)

	// 2. Preference store (optional outside prod).
	var (
		prefs       httpapi.PreferenceStore
		prefReader  locale.PreferenceReader
		redisClient *redis.Client
	)
	redisClient, err = connectRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("timefmtd setup: %w", err)
	}
	if redisClient != nil {
		store := locale.NewPreferenceStore(redisClient.RDB)
		prefs, prefReader = store, store
	}

	// 3. Locale resolution shared by both transports.
	resolver := locale.NewResolver(prefReader, cfg.DefaultLocale(), logger)

	// 4. Register HTTP + gRPC.
	api, err := httpapi.New(httpapi.Config{
		Formatter:   formatter,
		Resolver:    resolver,
		Preferences: prefs,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("timefmtd setup: %w", err)
	}
	api.Register(deps.HTTPMux)

	svc, err := grpcapi.NewService(formatter, resolver, logger)
	if err != nil {
		return nil, fmt.Errorf("timefmtd setup: %w", err)
	}
	svc.Register(deps.GRPCServer)

	logger.InfoContext(ctx, "timefmt service initialized",
		slog.String("locale", cfg.DefaultLocale().String()),
		slog.String("timezone", loc.String()),
		slog.Bool("preferences", prefs != nil),
	)

	cleanup := func(_ context.Context) error {
		if redisClient == nil {
			return nil
		}
		return redisClient.Close()
	}
	return cleanup, nil
}

// connectRedis returns a client for cfg.Redis, or nil when no address is
// configured. An unreachable server fails startup only in prod; elsewhere
// the client is kept and preference lookups fall through until it answers.
func connectRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("redis.addr not set, locale preferences disabled")
		return nil, nil
	}

	client := redis.NewClient(redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Redis.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		if cfg.IsProd() {
			_ = client.Close()
			return nil, err
		}
		logger.Warn("redis unreachable, preference lookups will fall back", slog.String("error", err.Error()))
	}
	return client, nil
}
