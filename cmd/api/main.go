// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/agestock/agestock-be/internal/adapters/db"
	"github.com/agestock/agestock-be/internal/adapters/imagecdn"
	redis_a "github.com/agestock/agestock-be/internal/adapters/redis_adapter"
	"github.com/agestock/agestock-be/internal/adapters/storage"
	"github.com/agestock/agestock-be/internal/core/ports"
	"github.com/agestock/agestock-be/internal/core/services"
	"github.com/agestock/agestock-be/internal/handlers"
	"github.com/agestock/agestock-be/internal/handlers/middleware"
	"github.com/agestock/agestock-be/internal/pkg/config"
	"github.com/agestock/agestock-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting aging inventory service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	// The CDN client secret may live in Secrets Manager instead of the env.
	cfg.ResolveImageCDNSecret(ctx, slogger)

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if !cfg.IsProduction() {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			// Don't exit in development, just warn
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	redisCache     ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	rollupService *services.RollupService

	inventoryHandler *handlers.InventoryHandler
	importHandler    *handlers.ImportHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
	syncHandler      *handlers.SyncHandler
	imagesHandler    *handlers.ImagesHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	aggregateRepo := db.NewAggregateRepository(database, logger)
	catalogRepo := db.NewCatalogRepository(database, logger)

	// Services
	deps.rollupService = services.NewRollupService(
		aggregateRepo,
		catalogRepo,
		deps.redisCache,
		services.RollupOptions{
			ResetFlagsOnImport:  cfg.Import.ResetFlags,
			ReservedStylePrefix: cfg.CatalogSync.ReservedPrefix,
		},
		logger,
	)

	// Image CDN access: token refresh plus authenticated fetches
	credentialSource := db.NewCredentialSource(database, logger)
	tokenCache := imagecdn.NewTokenCache(imagecdn.Config{
		TokenURL:     cfg.ImageCDN.TokenURL,
		ClientID:     cfg.ImageCDN.ClientID,
		ClientSecret: cfg.ImageCDN.ClientSecret,
		RefreshToken: cfg.ImageCDN.RefreshToken,
	}, credentialSource, logger)
	imageFetcher := imagecdn.NewFetcher(tokenCache, logger)

	// Import archival is optional; without a bucket uploads are processed
	// from the temp file only.
	var archiver storage.Archiver = storage.NoopArchiver{}
	if cfg.Import.ArchiveBucket != "" {
		s3Archiver, err := storage.NewS3Archiver(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.Import.ArchiveBucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			logger.Warn("import archival disabled",
				slog.String("error", err.Error()))
		} else {
			archiver = s3Archiver
		}
	}

	// Handlers
	deps.inventoryHandler = handlers.NewInventoryHandler(deps.rollupService, logger)
	deps.importHandler = handlers.NewImportHandler(deps.asynqClient, archiver, logger, cfg.Import, cfg.Asynq.RetryMax)
	deps.dashboardHandler = handlers.NewDashboardHandler(deps.rollupService, deps.redisCache, logger)
	deps.exportHandler = handlers.NewExportHandler(deps.rollupService, logger)
	deps.syncHandler = handlers.NewSyncHandler(deps.asynqClient, logger)
	deps.imagesHandler = handlers.NewImagesHandler(catalogRepo, imageFetcher, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, logger)

	if cfg.CatalogSync.Enabled && cfg.CatalogSync.Endpoint == "" {
		logger.Warn("catalog sync enabled but no endpoint configured")
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.Compression(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	// Health and readiness
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Aggregated inventory
	mux.HandleFunc("GET "+apiV1+"/inventory", deps.inventoryHandler.ListInventory)
	mux.HandleFunc("GET "+apiV1+"/inventory/{style}/{color}", deps.inventoryHandler.GetInventory)
	mux.HandleFunc("PATCH "+apiV1+"/inventory/{style}/{color}/flag", deps.inventoryHandler.UpdateFlag)

	// Imports
	mux.HandleFunc("POST "+apiV1+"/import/lowvalue", deps.importHandler.ImportLowValue)
	mux.HandleFunc("POST "+apiV1+"/import/catalog", deps.importHandler.ImportCatalog)

	// Export
	mux.HandleFunc("GET "+apiV1+"/export", deps.exportHandler.Export)

	// Dashboard
	mux.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)

	// Catalog sync trigger
	mux.HandleFunc("POST "+apiV1+"/sync/catalog", deps.syncHandler.TriggerSync)

	// Image proxy
	mux.HandleFunc("GET "+apiV1+"/images/{style}", deps.imagesHandler.GetStyleImage)
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger, 3)
}
