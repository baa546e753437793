package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mapmirror/mapmirror/internal/archive"
	"github.com/mapmirror/mapmirror/internal/config"
	"github.com/mapmirror/mapmirror/internal/cookie"
	"github.com/mapmirror/mapmirror/internal/download"
	"github.com/mapmirror/mapmirror/internal/logger"
	"github.com/mapmirror/mapmirror/internal/mirror"
	"github.com/mapmirror/mapmirror/internal/osuapi"
	"github.com/mapmirror/mapmirror/internal/scheduler"
	"github.com/mapmirror/mapmirror/internal/server"
	"github.com/mapmirror/mapmirror/internal/store"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Webhook: cfg.LogWebhook,
	})
	defer appLogger.Close()

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck // deferred cleanup

	jar := cookie.NewJar(cfg.CookieFile)
	api := osuapi.NewClient(cfg.OsuClientID, cfg.OsuClientSecret, cfg.OsuAPIV1Key)
	arc := archive.New(cfg.StorageDir)
	dl := download.New(jar, arc)
	svc := mirror.NewService(api, db, dl, arc, cfg.TrackAllMaps, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Best-effort warmup so the first scan loops start authenticated. The
	// auth and cookie tasks repair any failure on their own schedule.
	if err := api.Authenticate(ctx); err != nil {
		appLogger.Warn("Initial API authentication failed", "error", err)
	}
	if err := jar.Reload(); err != nil {
		appLogger.Warn("Initial cookie read failed", "error", err)
	}

	sched := scheduler.New(appLogger)
	sched.Start(ctx, "auth", cfg.Auth, api.Authenticate)
	sched.Start(ctx, "cookie", cfg.Cookie, func(context.Context) error {
		return jar.Reload()
	})
	sched.Start(ctx, "stats", cfg.Stats, func(context.Context) error {
		return db.RefreshStats()
	})
	sched.Start(ctx, "fetch", cfg.Fetch, svc.AdvanceCursor)
	sched.Start(ctx, "refresh", cfg.Refresh, svc.RefreshAll)
	sched.Start(ctx, "recent", cfg.Recent, svc.ScanRecent)
	sched.Start(ctx, "missing", cfg.Missing, svc.ScanMissing)

	srv := &http.Server{
		Addr:              ":" + cfg.StatusPort,
		Handler:           server.New(db, appLogger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		appLogger.Info("Status server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Status server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Status server forced to shutdown", "error", err)
	}

	sched.Wait()
	appLogger.Info("Mirror stopped")
}
