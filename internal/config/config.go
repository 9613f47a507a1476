package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageSupabase = "supabase"
	StorageBolt     = "bolt"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	DatabaseDriver string
	DatabaseURL    string
	AutoMigrate    bool

	StorageDriver          string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	StorageBucket          string
	BoltPath               string

	RedisAddr     string
	RedisPassword string
	CacheSize     int
	CacheTTL      time.Duration

	MaxUploadBytes int64
	AllowedOrigins []string
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset. Call godotenv.Load before this to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:                   getenv("PORT", "3001"),
		DatabaseDriver:         strings.ToLower(getenv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		StorageDriver:          strings.ToLower(getenv("STORAGE_DRIVER", StorageSupabase)),
		SupabaseURL:            strings.TrimSuffix(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		StorageBucket:          getenv("STORAGE_BUCKET", "post-images"),
		BoltPath:               getenv("BOLT_PATH", "data/objects.db"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.AutoMigrate, err = strconv.ParseBool(getenv("DB_AUTO_MIGRATE", "true")); err != nil {
		return cfg, fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
	}
	if cfg.CacheSize, err = strconv.Atoi(getenv("CACHE_SIZE", "500")); err != nil || cfg.CacheSize <= 0 {
		return cfg, fmt.Errorf("CACHE_SIZE must be a positive integer")
	}
	if cfg.CacheTTL, err = time.ParseDuration(getenv("CACHE_TTL", "5m")); err != nil {
		return cfg, fmt.Errorf("CACHE_TTL: %w", err)
	}
	mb, err := strconv.ParseInt(getenv("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil || mb <= 0 {
		return cfg, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}
	cfg.MaxUploadBytes = mb * 1024 * 1024

	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			// Fallback for local dev if not set
			cfg.DatabaseURL = "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable"
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "data/inkwell.db"
		}
	default:
		return cfg, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	switch cfg.StorageDriver {
	case StorageSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
			return cfg, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase storage driver")
		}
	case StorageBolt:
	default:
		return cfg, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
