// Package main is the entry point for the box factory API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"boxfactory/internal/config"
	v1 "boxfactory/internal/infrastructure/http/v1"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
	"boxfactory/pkg/logger"
	"boxfactory/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting boxfactory server", "env", cfg.Server.Env, "port", cfg.Server.Port)

	// --- Storage ---
	pool, backend, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatalw("storage unavailable", "error", err)
	}
	defer pool.Close()

	// --- Rate limit store ---
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalw("invalid REDIS_URL", "error", err)
		}
		rdb = redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		log.Info("rate limiter uses redis")
	}

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Config:   cfg,
		Logger:   log,
		Services: v1.NewServices(backend, numerator.New()),
		Backend:  backend,
		Pool:     pool,
		Redis:    rdb,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr, "storage", storageMode(pool))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func storageMode(pool *postgres.Pool) storage.Mode {
	if pool == nil {
		return storage.ModeMemory
	}
	return storage.ModePostgres
}
