// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/agestock/agestock-be/internal/adapters/catalog"
	"github.com/agestock/agestock-be/internal/adapters/db"
	redis_a "github.com/agestock/agestock-be/internal/adapters/redis_adapter"
	"github.com/agestock/agestock-be/internal/core/services"
	"github.com/agestock/agestock-be/internal/pkg/config"
	"github.com/agestock/agestock-be/internal/pkg/logger"
	"github.com/agestock/agestock-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	cfg.ResolveImageCDNSecret(ctx, slogger)

	database, err := initDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	// Repositories and services
	aggregateRepo := db.NewAggregateRepository(database, slogger)
	catalogRepo := db.NewCatalogRepository(database, slogger)

	rollupService := services.NewRollupService(
		aggregateRepo,
		catalogRepo,
		cache,
		services.RollupOptions{
			ResetFlagsOnImport:  cfg.Import.ResetFlags,
			ReservedStylePrefix: cfg.CatalogSync.ReservedPrefix,
		},
		slogger,
	)

	catalogSource := catalog.NewClient(catalog.Config{
		Endpoint: cfg.CatalogSync.Endpoint,
		APIKey:   cfg.CatalogSync.APIKey,
	}, slogger)
	syncService := services.NewCatalogSyncService(catalogSource, catalogRepo, aggregateRepo, cache, slogger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(
		asynqRedisOpt,
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck,
			Logger:          newAsynqLogger(slogger),
		},
	)

	// Task handlers
	mux := asynq.NewServeMux()

	importProcessor := workers.NewImportProcessor(rollupService, slogger)
	mux.HandleFunc(workers.TypeLowValueImport, importProcessor.ProcessLowValue)
	mux.HandleFunc(workers.TypeCatalogImport, importProcessor.ProcessCatalog)

	catalogProcessor := workers.NewCatalogProcessor(syncService, slogger)
	mux.HandleFunc(workers.TypeCatalogSync, catalogProcessor.ProcessSync)

	cleanupProcessor := workers.NewCleanupProcessor(cfg, slogger)
	mux.HandleFunc(workers.TypeTempCleanup, cleanupProcessor.CleanupTempFiles)

	// Periodic work
	scheduler := newScheduler(cfg, asynqRedisOpt, slogger)

	// One sync pass at startup so a fresh deployment does not wait a full
	// interval for its first catalog pull.
	if cfg.CatalogSync.Enabled && cfg.CatalogSync.Endpoint != "" {
		client := asynq.NewClient(asynqRedisOpt)
		if _, err := client.Enqueue(workers.NewCatalogSyncTask(),
			asynq.Queue("low"), asynq.MaxRetry(1)); err != nil {
			slogger.Warn("failed to enqueue startup catalog sync", slog.String("error", err.Error()))
		}
		client.Close()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if scheduler != nil {
		go func() {
			if err := scheduler.Run(); err != nil {
				slogger.Error("failed to run scheduler", slog.String("error", err.Error()))
				shutdown <- syscall.SIGTERM
			}
		}()
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// newScheduler registers periodic tasks. Returns nil when nothing is
// scheduled so the caller can skip running it.
func newScheduler(cfg *config.Config, redisOpt asynq.RedisClientOpt, slogger *slog.Logger) *asynq.Scheduler {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: newAsynqLogger(slogger),
	})

	registered := false

	if cfg.CatalogSync.Enabled && cfg.CatalogSync.Endpoint != "" {
		spec := fmt.Sprintf("@every %s", cfg.CatalogSync.Interval)
		if _, err := scheduler.Register(spec, workers.NewCatalogSyncTask(),
			asynq.Queue("low"), asynq.MaxRetry(1)); err != nil {
			slogger.Error("failed to register catalog sync schedule", slog.String("error", err.Error()))
		} else {
			registered = true
			slogger.Info("catalog sync scheduled",
				slog.Duration("interval", cfg.CatalogSync.Interval))
		}
	}

	if _, err := scheduler.Register("@every 6h", asynq.NewTask(workers.TypeTempCleanup, nil),
		asynq.Queue("low"), asynq.MaxRetry(1)); err != nil {
		slogger.Error("failed to register temp cleanup schedule", slog.String("error", err.Error()))
	} else {
		registered = true
	}

	if !registered {
		return nil
	}
	return scheduler
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	dbConfig := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}

	return db.NewDatabase(ctx, dbConfig, logger)
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
