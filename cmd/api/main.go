package main

// @title NextBus API
// @version 1.0.0
// @description Журнал поездок на автобусах с провайдером локации устройства.
// @description
// @description Основные возможности:
// @description - Список и карточки записей расписания
// @description - Черновики формы создания записи с подтверждением
// @description - Статус разрешения, фиксы позиции и обратное геокодирование

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/nextbus-service/docs"
	"github.com/nextbus-service/internal/config"
	httpDelivery "github.com/nextbus-service/internal/delivery/http"
	"github.com/nextbus-service/internal/delivery/http/handler"
	"github.com/nextbus-service/internal/delivery/ws"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/infrastructure/mapbox"
	"github.com/nextbus-service/internal/pkg/logger"
	"github.com/nextbus-service/internal/repository/cache"
	"github.com/nextbus-service/internal/repository/memory"
	"github.com/nextbus-service/internal/repository/postgres"
	redisRepo "github.com/nextbus-service/internal/repository/redis"
	"github.com/nextbus-service/internal/usecase"
	"github.com/nextbus-service/internal/worker"
	"github.com/nextbus-service/internal/worker/location"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting NextBus service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("store", cfg.Store.Driver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Schedule store
	var scheduleRepo repository.ScheduleRepository
	var db *postgres.DB

	switch cfg.Store.Driver {
	case "memory":
		scheduleRepo = memory.NewScheduleRepository(log)
		log.Warn("Using in-memory schedule store, data is lost on restart")
	case "postgres":
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}

		migrateCtx, migrateCancel := context.WithTimeout(ctx, 30*time.Second)
		err = db.Migrate(migrateCtx)
		migrateCancel()
		if err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}

		scheduleRepo = postgres.NewScheduleRepository(db)
	default:
		log.Fatal("Unknown store driver", zap.String("driver", cfg.Store.Driver))
	}

	// 4. Connect to Redis (optional)
	var redisClient *cache.Redis
	var cacheRepo repository.CacheRepository
	var streamRepo repository.StreamRepository

	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
	} else {
		log.Info("Redis disabled, address cache is process-local")
	}

	// 5. Health checks
	healthCtx, healthCancel := context.WithTimeout(ctx, 5*time.Second)
	if db != nil {
		if err := db.Health(healthCtx); err != nil {
			log.Fatal("PostgreSQL health check failed", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Health(healthCtx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}
	healthCancel()
	log.Info("All connections healthy")

	// 6. Geocoder
	if cfg.Mapbox.AccessToken == "" {
		log.Warn("MAPBOX_ACCESS_TOKEN is empty, addresses will be unavailable")
	}
	geocoder := mapbox.NewCachedGeocoder(
		mapbox.NewMapboxClient(&cfg.Mapbox, log),
		cacheRepo,
		cfg.Cache,
		log,
	)

	// 7. Location provider
	provider := usecase.NewLocationProvider(geocoder, cfg.Location, log)
	providerDone := make(chan struct{})
	go func() {
		defer close(providerDone)
		provider.Run(ctx)
	}()

	// 8. Use cases
	browserUC := usecase.NewBrowserUseCase(scheduleRepo, log)
	composerUC := usecase.NewComposerUseCase(scheduleRepo, provider, cfg.Composer, log)

	log.Info("Use cases initialized")

	// 9. HTTP handlers and server
	scheduleHandler := handler.NewScheduleHandler(browserUC, composerUC, log)
	composerHandler := handler.NewComposerHandler(composerUC, log)
	locationHandler := handler.NewLocationHandler(provider, log)

	server := httpDelivery.NewServer(cfg, log, scheduleHandler, composerHandler, locationHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 10. Live location feed
	var liveServer *ws.Server
	if cfg.Live.Enabled {
		hub := ws.NewHub(log)
		go hub.Run(ctx)

		feed := ws.NewLocationFeed(hub, provider, log)
		go feed.Pump(ctx)

		liveServer = ws.NewServer(cfg.GetLiveAddr(), feed, log)
		go func() {
			if err := liveServer.Start(); err != nil {
				log.Fatal("Failed to start live feed server", zap.Error(err))
			}
		}()
	}

	// 11. Location fix worker
	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		if streamRepo == nil {
			log.Warn("Worker enabled but Redis is disabled, location fix worker not started")
		} else {
			workerManager = worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
			workerManager.Register(location.NewFixWorker(
				streamRepo,
				provider,
				cfg.Worker.ConsumerGroup,
				cfg.Worker.BatchSize,
				log,
			))
			if err := workerManager.Start(ctx); err != nil {
				log.Fatal("Failed to start workers", zap.Error(err))
			}
		}
	}

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Bool("live_feed", cfg.Live.Enabled),
		zap.Bool("worker", workerManager != nil),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if liveServer != nil {
		if err := liveServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Live feed shutdown error", zap.Error(err))
		}
	}

	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	composerUC.Close()

	// Ячейки провайдера закрываются по отмене ctx
	cancel()
	<-providerDone

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
