package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/infrastructure/searchindex"
	"github.com/estate-backoffice/internal/pkg/logger"
	"github.com/estate-backoffice/internal/repository/cache"
	"github.com/estate-backoffice/internal/repository/postgres"
	redisRepo "github.com/estate-backoffice/internal/repository/redis"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/worker"
	"github.com/estate-backoffice/internal/worker/search"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Search Index Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("collection", cfg.Search.Collection))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis streams
	streamsClient, err := cache.NewRedisStreams(cfg.GetStreamsConfig(), log)
	if err != nil {
		log.Fatal("Failed to connect to Redis streams", zap.Error(err))
	}
	defer func() {
		if err := streamsClient.Close(); err != nil {
			log.Error("Failed to close Redis streams connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	listingRepo := postgres.NewListingRepository(db)
	agentRepo := postgres.NewAgentRepository(db)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)
	searchRepo := searchindex.NewClient(&cfg.Search, log)

	// 6. Initialize use cases
	indexingUC := usecase.NewIndexingUseCase(listingRepo, agentRepo, searchRepo, log)

	// 7. Initialize worker
	indexWorker := search.NewIndexWorker(
		streamRepo,
		indexingUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	manager := worker.NewManager(log)
	manager.Register(indexWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Worker started successfully")

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker gracefully...")

	if err := manager.Stop(); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}

	log.Info("Worker stopped successfully")
}
