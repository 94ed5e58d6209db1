package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lucasreed/vidvault/internal/api"
	"github.com/lucasreed/vidvault/internal/config"
	"github.com/lucasreed/vidvault/internal/constants"
	"github.com/lucasreed/vidvault/internal/kv"
	"github.com/lucasreed/vidvault/internal/logger"
	"github.com/lucasreed/vidvault/internal/store"
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

	// Initialize object store
	st, err := store.Open(cfg.DBPath, appLogger)
	if err != nil {
		appLogger.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Initialize key-value layer
	factory := kv.NewFactory(cfg.KVPath, nil, appLogger)
	defer factory.Close()

	backend, err := factory.Get("app", "config")
	if err != nil {
		appLogger.Error("Failed to init config backend", "error", err)
		os.Exit(1)
	}
	cache := kv.NewCache(backend, kv.CacheConfig{
		MaxSize:       cfg.CacheMaxSize,
		DefaultTTL:    cfg.CacheTTL,
		SweepInterval: constants.DefaultCacheSweep,
	}, appLogger)
	defer cache.Close()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		serve(cfg, appLogger, st, cache)
	case "stats":
		stats, err := st.Stats()
		if err != nil {
			appLogger.Error("Failed to read stats", "error", err)
			os.Exit(1)
		}
		printJSON(stats)
	case "backup":
		path, err := st.Backup()
		if err != nil {
			appLogger.Error("Backup failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(path)
	case "restore":
		if len(os.Args) < 3 {
			log.Fatal("usage: vidvault restore <snapshot>")
		}
		if err := st.Restore(os.Args[2]); err != nil {
			appLogger.Error("Restore failed", "error", err)
			os.Exit(1)
		}
	case "export":
		export, err := kv.ExportSettings(cache)
		if err != nil {
			appLogger.Error("Export failed", "error", err)
			os.Exit(1)
		}
		printJSON(export)
	case "import":
		if len(os.Args) < 3 {
			log.Fatal("usage: vidvault import <file>")
		}
		data, err := os.ReadFile(os.Args[2])
		if err != nil {
			appLogger.Error("Failed to read import file", "error", err)
			os.Exit(1)
		}
		if err := kv.ImportSettings(cache, data); err != nil {
			appLogger.Error("Import failed", "error", err)
			os.Exit(1)
		}
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}

func serve(cfg *config.Config, appLogger *logger.Logger, st *store.Store, cache *kv.Cache) {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handler := api.NewHandler(st, cache, appLogger)
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Shutdown failed", "error", err)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode output: %v", err)
	}
	fmt.Println(string(data))
}
