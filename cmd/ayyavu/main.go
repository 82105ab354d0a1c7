// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/config"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/handler"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/logging"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/metrics"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/middleware"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/service"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/session"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/store"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// uploadsMaxAge is the Cache-Control max-age for stored attachments. Names
// are unique per upload, so they never change in place.
const uploadsMaxAge = 7 * 24 * 60 * 60

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Ayyavu Construction - portfolio site and admin API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_DB_DRIVER         sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_DB_PATH           SQLite path or MySQL DSN (default: ./data/construction.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_SERVER_PORT       Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_SESSION_SECRET    Session secret (required in production, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_SESSION_STORE     memory|sql|redis (default: memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_REDIS_URL         Redis URL for the redis session store\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_UPLOADS_DIR       Attachment directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AYYAVU_PUBLIC_DIR        Public site directory (default: ./public)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Printf("ayyavu %s\n", versionInfo)
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment()))

	dialect := store.Dialect(cfg.DBDriver)
	if dialect == store.DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		slog.Info("initializing database", "driver", dialect, "path", cfg.DBPath)
	} else {
		slog.Info("initializing database", "driver", dialect)
	}

	db, err := store.Open(dialect, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, dialect); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	queries := store.NewWithDialect(db, dialect)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, queries); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}
	slog.Info("database ready")

	sessionStore, redisClient, err := newSessionStore(ctx, cfg, db, dialect)
	if err != nil {
		return fmt.Errorf("initializing session store: %w", err)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	gate := session.NewGate(session.New(sessionStore, cfg.SessionLifetime, cfg.IsDevelopment()))
	slog.Info("session store ready", "store", cfg.SessionStore, "lifetime", cfg.SessionLifetime)

	uploads := service.NewUploadService(cfg.UploadsDir)
	if err := uploads.EnsureDir(); err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	api := handler.API{
		Auth:     handler.NewAuthHandler(auth.NewVerifier(queries), gate, m),
		Projects: handler.NewProjectHandler(service.NewProjectService(queries), uploads, m),
		Gate:     gate,
		CSRF: middleware.CSRF(middleware.DefaultCSRFConfig(
			[]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.TrustedOrigins,
		)),
	}
	healthHandler := handler.NewHealthHandler(db, uploads.Dir(), versionInfo, gate)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Metrics(m))

	// /health loads the session to decide how much to show; probes and
	// metrics are served without sessions
	r.With(gate.Manager().LoadAndSave).Get("/health", healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)
	if m != nil {
		r.Handle(handler.RouteMetrics, m.Handler())
	}

	r.With(middleware.StaticCache(uploadsMaxAge)).Handle(handler.RouteUploads+"/*",
		http.StripPrefix(handler.RouteUploads, handler.StaticFiles(uploads.Dir())))

	r.Group(func(r chi.Router) {
		r.Use(gate.Manager().LoadAndSave)
		api.Mount(r)
	})

	r.Handle("/*", handler.StaticFiles(cfg.PublicDir))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		slog.Info("admin API available", "login", handler.RouteAPI+handler.RouteAdmin+handler.RouteLogin)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newSessionStore builds the configured scs store. The Redis client is
// returned so the caller can close it.
func newSessionStore(ctx context.Context, cfg *config.Config, db *sql.DB, dialect store.Dialect) (scs.Store, *redis.Client, error) {
	switch cfg.SessionStore {
	case config.SessionStoreSQL:
		s, err := session.NewSQLStore(db, dialect)
		return s, nil, err

	case config.SessionStoreRedis:
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, cfg.RedisPrefix), client, nil

	default:
		return session.NewMemoryStore(), nil, nil
	}
}
