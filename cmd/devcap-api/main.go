package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devcap/internal/api"
	"devcap/internal/auth"
	"devcap/internal/catalog"
	"devcap/internal/config"
	"devcap/internal/db"
	"devcap/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool, logger)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("schema init failed", "err", err)
		os.Exit(1)
	}
	if cfg.StartupSeedCatalog {
		empty, err := st.CatalogEmpty(ctx)
		if err != nil {
			logger.Error("catalog check failed", "err", err)
			os.Exit(1)
		}
		if empty {
			if err := st.SeedCatalog(ctx, catalog.Defaults()); err != nil {
				logger.Error("seed catalog failed", "err", err)
				os.Exit(1)
			}
			logger.Info("catalog seeded with defaults")
		}
	}

	authSvc := auth.NewService(pool, logger, cfg.SessionTTL)
	server := api.New(cfg, logger, authSvc, st)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pruned, err := st.DeleteExpiredSessions(ctx)
				if err != nil {
					logger.Error("session prune failed", "err", err)
					continue
				}
				if pruned > 0 {
					logger.Info("pruned expired sessions", "count", pruned)
				}
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("devcap api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
