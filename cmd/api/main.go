// Copyright (c) 2026 Inkshelf. All rights reserved.

// Command api is the entry point for the Inkshelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server and the bin sweeper with graceful shutdown.
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

	"github.com/inkshelf/inkshelf/internal/api"
	"github.com/inkshelf/inkshelf/internal/contact"
	"github.com/inkshelf/inkshelf/internal/core/bin"
	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/core/genre"
	"github.com/inkshelf/inkshelf/internal/core/series"
	"github.com/inkshelf/inkshelf/internal/core/wishlist"
	"github.com/inkshelf/inkshelf/internal/dashboard"
	"github.com/inkshelf/inkshelf/internal/metadata"
	"github.com/inkshelf/inkshelf/internal/platform/config"
	"github.com/inkshelf/inkshelf/internal/platform/constants"
	"github.com/inkshelf/inkshelf/internal/platform/migration"
	pgstore "github.com/inkshelf/inkshelf/internal/platform/postgres"
	redisstore "github.com/inkshelf/inkshelf/internal/platform/redis"
	"github.com/inkshelf/inkshelf/internal/platform/sec"
	"github.com/inkshelf/inkshelf/internal/prefs"
	"github.com/inkshelf/inkshelf/internal/suggest"
	"github.com/inkshelf/inkshelf/internal/users/auth"
	"github.com/inkshelf/inkshelf/internal/widget"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "inkshelf"))
	slog.SetDefault(log)

	log.Info("[Inkshelf] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkshelf"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	verificationTokenRepository := auth.NewVerificationTokenRepository(rdb)
	authService := auth.NewService(
		userRepository, sessionRepository,
		resetTokenRepository, verificationTokenRepository, jwtSvc,
	)

	// The book and series services consume each other (series cleanup on
	// delete, book listing per series), so the deleter is wired late.
	bookService := book.NewService(book.NewPostgresRepository(pool), nil, log)
	genreService := genre.NewService(genre.NewPostgresRepository(pool), log)
	seriesService := series.NewService(series.NewPostgresRepository(pool), bookService, log)
	bookService.SetSeriesDeleter(seriesService)

	wishlistService := wishlist.NewService(wishlist.NewPostgresRepository(pool), bookService, log)
	binService := bin.NewService(bin.NewPostgresRepository(pool), log)
	dashboardService := dashboard.NewService(bookService, seriesService, log)
	suggestService := suggest.NewService(bookService, genreService, seriesService, log)

	widgetService := widget.NewService(
		widget.NewPostgresRepository(pool), widget.NewRedisCache(rdb), log)
	prefsService := prefs.NewService(
		prefs.NewPostgresRepository(pool), prefs.NewRedisCache(rdb), log)

	metadataService := metadata.NewService(
		metadata.NewOpenLibraryClient(cfg.MetadataBaseURL), metadata.NewRedisCache(rdb), log)

	contactService := contact.NewService(
		contact.NewHTTPEmailClient(cfg.EmailAPIURL, cfg.EmailAPIKey),
		cfg.EmailFromAddress, cfg.ContactRecipient, log)

	// ── 9. Bin Sweeper ────────────────────────────────────────────────────
	sweeper := bin.NewSweeper(bin.NewPostgresRepository(pool), log)
	must(log, sweeper.Start(), "start bin sweeper")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Book:      book.NewHandler(bookService),
		Genre:     genre.NewHandler(genreService),
		Series:    series.NewHandler(seriesService),
		Wishlist:  wishlist.NewHandler(wishlistService),
		Bin:       bin.NewHandler(binService),
		Dashboard: dashboard.NewHandler(dashboardService),
		Suggest:   suggest.NewHandler(suggestService),
		Widget:    widget.NewHandler(widgetService),
		Prefs:     prefs.NewHandler(prefsService),
		Metadata:  metadata.NewHandler(metadataService),
		Contact:   contact.NewHandler(contactService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

	// Stop the sweeper and wait for any in-flight sweep.
	<-sweeper.Stop().Done()

	// Persist any debounced widget layouts before the pool closes.
	widgetService.Flush()

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
