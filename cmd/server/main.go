package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
	"inkwell/internal/services"
	"inkwell/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize Database
	gdb, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gdb)

	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open object store: %v", err)
	}
	defer store.Close()

	detailCache, closeCache := openCache(cfg)
	defer closeCache()

	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	router.RegisterRoutes(r, router.Deps{
		Posts:          services.NewPostService(gdb, store, detailCache, cfg.CacheTTL),
		Comments:       services.NewCommentService(gdb),
		Favorites:      services.NewFavoriteService(gdb),
		Profiles:       services.NewProfileService(gdb),
		Store:          store,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Returning from main runs the deferred closes of the cache, store and database.
	if err := serve(ctx, srv, 10*time.Second); err != nil {
		log.Printf("Server error: %v", err)
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
// A listen failure is returned instead of exiting so callers can clean up.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Inkwell server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}

func openStore(cfg config.Config) (storage.ObjectStore, error) {
	switch cfg.StorageDriver {
	case config.StorageBolt:
		log.Printf("Using bolt object store at %s", cfg.BoltPath)
		return storage.OpenBolt(cfg.BoltPath, cfg.StorageBucket)
	default:
		log.Printf("Using Supabase storage bucket %s", cfg.StorageBucket)
		return storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.StorageBucket), nil
	}
}

// openCache prefers Redis when configured and falls back to the in-process LRU.
func openCache(cfg config.Config) (cache.Cache, func()) {
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			log.Printf("Using redis cache at %s", cfg.RedisAddr)
			return rc, func() { rc.Close() }
		}
		log.Printf("Redis unavailable, falling back to in-memory cache: %v", err)
	}

	lru, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		log.Printf("Cache disabled: %v", err)
		return cache.Nop(), func() {}
	}
	return lru, func() {}
}
