package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/config"
	"github.com/dailycount/stockledger-service/internal/advisory"
	"github.com/dailycount/stockledger-service/internal/backup"
	"github.com/dailycount/stockledger-service/internal/schema"
	"github.com/dailycount/stockledger-service/internal/server"
	"github.com/dailycount/stockledger-service/pkg/broker"
	"github.com/dailycount/stockledger-service/pkg/cache"
	"github.com/dailycount/stockledger-service/pkg/database/postgres"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
	"github.com/dailycount/stockledger-service/pkg/search"

	catalogH "github.com/dailycount/stockledger-service/internal/catalog/handler"
	catalogListenerPkg "github.com/dailycount/stockledger-service/internal/catalog/listener"
	catalogRepoPkg "github.com/dailycount/stockledger-service/internal/catalog/repository"
	catalogUCPkg "github.com/dailycount/stockledger-service/internal/catalog/usecase"

	storeH "github.com/dailycount/stockledger-service/internal/store/handler"
	storeRepoPkg "github.com/dailycount/stockledger-service/internal/store/repository"
	storeUCPkg "github.com/dailycount/stockledger-service/internal/store/usecase"

	orderH "github.com/dailycount/stockledger-service/internal/order/handler"
	orderRepoPkg "github.com/dailycount/stockledger-service/internal/order/repository"
	orderUCPkg "github.com/dailycount/stockledger-service/internal/order/usecase"

	snapshotH "github.com/dailycount/stockledger-service/internal/snapshot/handler"
	snapshotRepoPkg "github.com/dailycount/stockledger-service/internal/snapshot/repository"
	snapshotUCPkg "github.com/dailycount/stockledger-service/internal/snapshot/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := schema.Ensure(context.Background(), db); err != nil {
		appLogger.Fatal("Could not provision schema", zap.Error(err))
	}

	// 4. Initialize Repositories
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	storeRepo := storeRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	snapshotRepo := snapshotRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, running without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize Retry Controller and Backup Caches
	retrier := retry.NewController(
		cfg.Retry.MaxAttempts,
		time.Duration(cfg.Retry.BackoffCeiling)*time.Second,
		appLogger,
	)
	backupTTL := time.Duration(cfg.Backup.TTL) * time.Second
	snapshotBackups := backup.NewCache(backupTTL)
	orderBackups := backup.NewCache(backupTTL)

	// 7. Initialize UseCases
	catalogCacheTTL := time.Duration(cfg.Ledger.CatalogCacheTTL) * time.Second
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, redisClient, retrier, catalogCacheTTL, appLogger)
	storeUC := storeUCPkg.NewStoreUseCase(storeRepo, redisClient, retrier, catalogCacheTTL, appLogger)

	// Orders read the day's count straight from snapshot storage so the
	// two usecases do not depend on each other in a cycle.
	orderUC := orderUCPkg.NewOrderUseCase(
		orderRepo,
		snapshotRepo,
		catalogUC,
		storeUC,
		advisory.Noop{},
		retrier,
		orderBackups,
		esClient,
		orderUCPkg.Config{MaxQuantity: cfg.Ledger.MaxQuantity},
		appLogger,
	)
	snapshotUC := snapshotUCPkg.NewSnapshotUseCase(
		snapshotRepo,
		orderUC,
		catalogUC,
		retrier,
		snapshotBackups,
		redisClient,
		snapshotUCPkg.Config{
			MaxQuantity: cfg.Ledger.MaxQuantity,
			SaveLockTTL: time.Duration(cfg.Ledger.SaveLockTTL) * time.Second,
		},
		appLogger,
	)

	// 7.5 Initialize Listeners
	changeListener := catalogListenerPkg.NewChangeListener(kafkaConsumer, catalogUC, storeUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go changeListener.Start(ctx)

	// Expired backup entries are also evicted lazily on access; the sweep
	// keeps the caches from holding payloads nobody asks about again.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snapshotBackups.Sweep()
				orderBackups.Sweep()
			}
		}
	}()

	// 8. Initialize Handlers and Router
	handlers := server.Handlers{
		Snapshot: snapshotH.NewSnapshotHandler(snapshotUC, appLogger),
		Order:    orderH.NewOrderHandler(orderUC, appLogger),
		Catalog:  catalogH.NewCatalogHandler(catalogUC, appLogger),
		Store:    storeH.NewStoreHandler(storeUC, appLogger),
	}
	router := server.NewRouter(handlers, appLogger)

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
