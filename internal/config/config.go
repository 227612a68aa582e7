package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs. Values come from
// the environment, optionally seeded from a .env file in the working
// directory.
type Config struct {
	Port         string
	DatabaseURL  string
	SyncInterval time.Duration
	Location     *time.Location
	AdminSecret  string
}

// Load reads a .env file if one exists, then resolves the configuration
// from the environment. Every field has a development default so the
// server boots with no environment at all.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getenvDefault("PORT", "8080")

	dsn := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN"))
	if dsn == "" {
		host := getenvDefault("PGHOST", "0.0.0.0")
		port := getenvDefault("PGPORT", "5432")
		user := getenvDefault("PGUSER", "ztl_maps")
		pass := getenvDefault("PGPASSWORD", "password")
		db := getenvDefault("PGDATABASE", "ztl_maps_db")
		sslmode := getenvDefault("PGSSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}
	cfg.DatabaseURL = dsn

	if v := os.Getenv("ZTL_SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid ZTL_SYNC_INTERVAL: %q", v)
		}
		cfg.SyncInterval = d
	} else {
		cfg.SyncInterval = 6 * time.Hour
	}

	// Municipalities publish restriction hours in Italian local time, so
	// schedule evaluation happens in this zone unless overridden.
	tzName := getenvDefault("TZ", "Europe/Rome")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %v", tzName, err)
	}
	cfg.Location = loc

	cfg.AdminSecret = getenvDefault("ADMIN_SECRET", "ztl-maps-dev-secret")

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
