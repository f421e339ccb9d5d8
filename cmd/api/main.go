package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mohammadpnp/debt-import/internal/bootstrap"
	"github.com/mohammadpnp/debt-import/internal/config"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/debt-import/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := repository.ApplySchema(context.Background(), db); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create pgx pool", zap.Error(err))
	}
	defer pool.Close()

	server := bootstrap.NewHTTPServer(db, cfg.Import, logger)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	worker := bootstrap.NewImportWorker(db, pool, cfg.Import, logger)
	worker.Start(workerCtx)

	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Port), zap.Int("workers", cfg.Import.Workers))
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
}
