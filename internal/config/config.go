package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr               string
	DatabaseURL        string
	SessionTTL         time.Duration
	StartupSeedCatalog bool
}

type CLIConfig struct {
	APIBaseURL string
}

type SeedConfig struct {
	DatabaseURL   string
	AdminEmail    string
	AdminPassword string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("DEVCAP_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:               addr,
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionTTL:         envDurationDefault("DEVCAP_SESSION_TTL", 30*24*time.Hour),
		StartupSeedCatalog: envBoolDefault("DEVCAP_STARTUP_SEED_CATALOG", true),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("DVC_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func LoadSeedFromEnv() (SeedConfig, error) {
	cfg := SeedConfig{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AdminEmail:    envDefault("ADMIN_EMAIL", "admin@capitalist.dev"),
		AdminPassword: envDefault("ADMIN_PASSWORD", "admin123"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
