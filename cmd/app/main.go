package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minetally/minetally/internal/config"
	"github.com/minetally/minetally/internal/database"
	"github.com/minetally/minetally/internal/database/postgres"
	"github.com/minetally/minetally/internal/server"
	"github.com/minetally/minetally/internal/stats"
	"github.com/minetally/minetally/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxIdleTime: 5 * time.Minute,
		MaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	statsRepo := postgres.NewStatsRepository(pool)
	statsService := stats.NewService(statsRepo, cfg.CacheSize, cfg.CacheTTL)

	flushWorker := worker.NewFlushWorker(statsService, cfg.FlushInterval)
	flushWorker.Start(ctx)

	srv := server.NewServer(cfg.Port, cfg.APIKey, pool, statsService)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := flushWorker.Stop(shutdownCtx); err != nil {
		slog.Error("Final flush failed", "error", err)
	}
}
