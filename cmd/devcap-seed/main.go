package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"devcap/internal/auth"
	"devcap/internal/catalog"
	"devcap/internal/config"
	"devcap/internal/db"
	"devcap/internal/store"
)

// devcap-seed recreates the catalog from the built-in defaults and upserts
// the admin account. Player saves survive; rows pointing at retired catalog
// ids simply stop resolving.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadSeedFromEnv()
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

	cat := catalog.Defaults()
	if err := st.SeedCatalog(ctx, cat); err != nil {
		logger.Error("seed catalog failed", "err", err)
		os.Exit(1)
	}
	logger.Info("catalog seeded",
		"businesses", len(cat.Businesses),
		"team_members", len(cat.TeamMembers),
		"upgrades", len(cat.Upgrades),
		"achievements", len(cat.Achievements),
	)

	authSvc := auth.NewService(pool, logger, 0)
	adminID, err := authSvc.EnsureUser(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("admin upsert failed", "err", err)
		os.Exit(1)
	}
	logger.Info("admin account ready", "user_id", adminID, "email", cfg.AdminEmail)
}
