package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/mediacache/internal/cache"
	"github.com/cesargomez89/mediacache/internal/catalog"
	"github.com/cesargomez89/mediacache/internal/config"
	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/fetcher"
	httpapp "github.com/cesargomez89/mediacache/internal/http"
	"github.com/cesargomez89/mediacache/internal/httpclient"
	"github.com/cesargomez89/mediacache/internal/logger"
	"github.com/cesargomez89/mediacache/internal/origin"
	"github.com/cesargomez89/mediacache/internal/settings"
	"github.com/cesargomez89/mediacache/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Settings: a broken file falls back to defaults, never a failed start
	settingsStore := settings.NewStore(cfg.SettingsPath, appLogger)
	if _, err := settingsStore.Load(); err != nil {
		appLogger.Error("Failed to persist default settings", "path", cfg.SettingsPath, "error", err)
	}

	// Initialize DB for catalog responses
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if n, err := db.PurgeExpired(); err != nil {
		appLogger.Warn("Failed to purge expired catalog entries", "error", err)
	} else if n > 0 {
		appLogger.Info("Purged expired catalog entries", "count", n)
	}

	// Catalog
	catalogProvider := catalog.NewCachedProvider(
		catalog.NewHTTPProvider(cfg.CatalogURL, httpclient.NewClient(nil, constants.CatalogRequestInterval)),
		catalog.NewStoreCache(db),
		cfg.CatalogCacheTTL,
	)
	gateway := catalog.NewGateway(catalogProvider, appLogger)

	// Media pipeline
	cacheStore := cache.NewStore(cfg.CacheDir, cfg.CacheCompression)
	mediaFetcher := fetcher.New(
		origin.NewClient(cfg.OriginURL),
		settingsStore,
		cacheStore,
		fetcher.WithLogger(appLogger),
		fetcher.WithAudioOptions(origin.AudioOptions{
			Filter:        constants.DefaultAudioFilter,
			Quality:       cfg.AudioQuality,
			PlayerClients: cfg.PlayerClients,
		}),
	)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := httpapp.NewHandler(mediaFetcher, gateway, settingsStore, cacheStore, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    net.JoinHostPort("127.0.0.1", cfg.Port),
		Handler: r,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "cache_dir", cfg.CacheDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	// Let in-flight cache writes finish
	mediaFetcher.Wait()

	appLogger.Info("Server exiting")
}
