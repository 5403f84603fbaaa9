// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

// Command api is the entry point for the Dublix HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect the selected key-value backend (Redis, PostgreSQL, or memory).
//  4. Build the catalog source, wrapped in the Redis read-through cache when
//     Redis is available.
//  5. Resolve the guest identity (created on first start).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dublix/dublix/internal/api"
	"github.com/dublix/dublix/internal/catalog"
	"github.com/dublix/dublix/internal/guest"
	"github.com/dublix/dublix/internal/library"
	"github.com/dublix/dublix/internal/platform/config"
	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/internal/platform/kvstore"
	"github.com/dublix/dublix/internal/platform/migration"
	pgstore "github.com/dublix/dublix/internal/platform/postgres"
	redisstore "github.com/dublix/dublix/internal/platform/redis"
	"github.com/dublix/dublix/internal/social"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "dublix"))
	slog.SetDefault(log)

	log.Info("[Dublix] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "dublix"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("kv_backend", cfg.KVBackend),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Key-Value Backend ──────────────────────────────────────────────
	var (
		store       kvstore.Store
		redisClient *redis.Client
	)

	switch cfg.KVBackend {
	case config.KVBackendRedis:
		redisClient, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := redisClient.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		store = kvstore.NewRedis(redisClient)

	case config.KVBackendPostgres:
		pool, perr := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, perr, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
		store = kvstore.NewPostgres(pool)

	case config.KVBackendMemory:
		log.Warn("memory_backend_selected", slog.String("note", "state is lost on restart"))
		store = kvstore.NewMemory()
	}

	// ── 4. Catalog Source ─────────────────────────────────────────────────
	var source catalog.Source = catalog.NewRESTSource(cfg.CatalogURL, cfg.CatalogAPIKey)
	if redisClient != nil && cfg.CatalogCacheTTL > 0 {
		source = catalog.NewCachedSource(source, redisClient, cfg.CatalogCacheTTL, log)
	}

	// ── 5. Guest Identity ─────────────────────────────────────────────────
	guestService := guest.NewService(
		guest.NewIdentityRepository(store),
		guest.NewProfileRepository(store),
		log,
	)
	identity, err := guestService.GetOrCreate(startupCtx)
	must(log, err, "resolve guest identity")
	log.Info("guest_identity_ready", slog.String("user_id", identity.ID))

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckStore: func() error {
			return store.Ping(context.Background())
		},
		CheckCatalog: func() error {
			_, cerr := source.ListAnime(context.Background())
			return cerr
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	catalogService := catalog.NewService(source, log)
	libraryService := library.NewService(
		library.NewFavoritesRepository(store),
		library.NewWatchRepository(store),
		catalogService,
		log,
	)
	socialService := social.NewService(social.NewCommentRepository(store), guestService, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService),
		Library:   library.NewHandler(libraryService),
		Social:    social.NewHandler(socialService, identity),
		Guest:     guest.NewHandler(guestService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
