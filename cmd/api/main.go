package main

// @title Estate Backoffice API
// @version 1.0.0
// @description Back-office API for a real-estate catalog: properties, projects and
// @description offices with a four-level location hierarchy (country, city, district,
// @description neighborhood), geocoding, a multi-step listing form, media uploads,
// @description contact leads and editable content blocks.

// @contact.name API Support
// @contact.email support@estate-backoffice.com

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/estate-backoffice/docs"
	"github.com/estate-backoffice/internal/config"
	httpDelivery "github.com/estate-backoffice/internal/delivery/http"
	"github.com/estate-backoffice/internal/delivery/http/handler"
	"github.com/estate-backoffice/internal/infrastructure/geocoding"
	"github.com/estate-backoffice/internal/infrastructure/searchindex"
	"github.com/estate-backoffice/internal/infrastructure/storage"
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

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Estate Backoffice API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL and apply migrations
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	if err := postgres.Migrate(&cfg.Database, "migrations", log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// 4. Connect to Redis (cache + streams)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamsClient, err := cache.NewRedisStreams(cfg.GetStreamsConfig(), log)
	if err != nil {
		log.Fatal("Failed to connect to Redis streams", zap.Error(err))
	}
	defer func() {
		if err := streamsClient.Close(); err != nil {
			log.Error("Failed to close Redis streams connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	if err := db.Health(ctx); err != nil {
		cancel()
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		cancel()
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	cancel()

	log.Info("All connections healthy")

	// 6. Initialize external clients
	geocoderClient := geocoding.NewClient(&cfg.Geocoder, log)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 10*time.Second)
	storageClient, err := storage.NewS3Storage(storageCtx, &cfg.Storage, log)
	storageCancel()
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	searchClient := searchindex.NewClient(&cfg.Search, log)

	// 7. Initialize repositories
	locationRepo := postgres.NewLocationRepository(db)
	listingRepo := postgres.NewListingRepository(db)
	agentRepo := postgres.NewAgentRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	contentRepo := postgres.NewContentRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	locationUC := usecase.NewLocationUseCase(
		locationRepo,
		cacheRepo,
		log,
		cfg.Cache.LocationTTL,
	)

	geocodeUC := usecase.NewGeocodeUseCase(geocoderClient, log, cfg.Geocoder.Region)

	listingUC := usecase.NewListingUseCase(
		listingRepo,
		locationRepo,
		streamRepo,
		log,
	)

	formUC := usecase.NewFormUseCase(
		listingRepo,
		locationRepo,
		geocodeUC,
		log,
		cfg.Form.SessionTTL,
		cfg.Form.SweepInterval,
	)

	mediaUC := usecase.NewMediaUseCase(storageClient, &cfg.Storage, log)
	contactUC := usecase.NewContactUseCase(contactRepo, log)
	contentUC := usecase.NewContentUseCase(contentRepo, log)
	agentUC := usecase.NewAgentUseCase(agentRepo, log)

	log.Info("Use cases initialized")

	// Background sweep of expired form sessions
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()
	go formUC.Run(appCtx)

	// 9. Initialize HTTP handlers
	locationHandler := handler.NewLocationHandler(locationUC, log)
	geocodeHandler := handler.NewGeocodeHandler(geocodeUC, log)
	listingHandler := handler.NewListingHandler(listingUC, log)
	formHandler := handler.NewFormHandler(formUC, log)
	mediaHandler := handler.NewMediaHandler(mediaUC, log)
	contactHandler := handler.NewContactHandler(contactUC, log)
	contentHandler := handler.NewContentHandler(contentUC, log)
	agentHandler := handler.NewAgentHandler(agentUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		locationHandler,
		geocodeHandler,
		listingHandler,
		formHandler,
		mediaHandler,
		contactHandler,
		contentHandler,
		agentHandler,
	)

	// 11. Optionally run the index worker inside the API process
	var workerManager *worker.Manager
	if cfg.Worker.Enabled {
		indexingUC := usecase.NewIndexingUseCase(listingRepo, agentRepo, searchClient, log)
		indexWorker := search.NewIndexWorker(
			streamRepo,
			indexingUC,
			cfg.Worker.ConsumerGroup,
			cfg.Worker.MaxRetries,
			log,
		)

		workerManager = worker.NewManager(log)
		workerManager.Register(indexWorker)
		if err := workerManager.Start(appCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 12. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	appCancel()

	log.Info("Server stopped successfully")
}
