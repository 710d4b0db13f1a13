package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/banking-tools/transaction-aggregator/internal/cache"
	"github.com/banking-tools/transaction-aggregator/internal/config"
	"github.com/banking-tools/transaction-aggregator/internal/csv"
	"github.com/banking-tools/transaction-aggregator/internal/handler"
	"github.com/banking-tools/transaction-aggregator/internal/server"
	"github.com/banking-tools/transaction-aggregator/internal/service"
	"github.com/banking-tools/transaction-aggregator/internal/storage"
	"github.com/banking-tools/transaction-aggregator/internal/worker"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting application")

	batchStore := storage.NewBatchStore()
	transactionStore := storage.NewTransactionStore()
	log.Info(ctx, "Repositories initialized")

	statsCache := cache.NewStatisticsCache(log)

	pool := worker.New(log, &worker.Config{
		PoolSize:      cfg.Worker.PoolSize,
		QueueCapacity: cfg.Worker.QueueCapacity,
	})
	pool.Start(ctx)

	importService := service.NewImportService(
		batchStore,
		transactionStore,
		csv.NewParser(),
		statsCache,
		pool,
		log,
		cfg.Import.ChunkSize,
	)
	queryService := service.NewQueryService(transactionStore, log)
	statisticsService := service.NewStatisticsService(transactionStore, statsCache, log)
	log.Info(ctx, "Services initialized")

	transactionHandler := handler.NewTransactionHandler(importService, queryService, log, cfg.Import.MaxFileSizeMB)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, log)
	healthHandler := handler.NewHealthHandler()

	srv := server.New(cfg, log, transactionHandler, statisticsHandler, healthHandler)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests first, then drain in-flight imports.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	if err := pool.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Worker pool shutdown error",
			"error", err,
		)
	}

	log.Info(ctx, "Application stopped gracefully")
}
