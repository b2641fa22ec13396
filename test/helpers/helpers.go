// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agestock/agestock-be/internal/adapters/db"
	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_agestock",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_agestock",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	// Wait for the container to accept connections
	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_agestock",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Import: config.ImportConfig{
			MaxSizeMB:         100,
			ProcessingTimeout: 5 * time.Minute,
			TempDir:           "/tmp",
		},
		CatalogSync: config.CatalogSyncConfig{
			Enabled:        false,
			Interval:       6 * time.Hour,
			ReservedPrefix: "#",
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestRawRow creates a raw low-value row with sensible defaults
func CreateTestRawRow(overrides ...func(*domain.RawInventoryRow)) domain.RawInventoryRow {
	row := domain.RawInventoryRow{
		Style:               "AB123",
		Color:               "Navy",
		Commodity:           "Knit Top",
		Size:                "M",
		RemainingStock:      "10",
		RemainingAssetValue: "52.50",
		CurrentStock:        "12",
		CommittedStock:      "2",
		UnitCost:            "5.25",
		InventoryAge:        "430",
		AgeBracket:          "1 year+",
		LastStockInDate:     "2025-06-15",
		PurchaseOrderNo:     "PO-9921",
		ImageLink:           "http://cad/ab123.jpg",
	}

	for _, override := range overrides {
		override(&row)
	}

	return row
}

// CreateTestRecord creates a rolled aggregate with sensible defaults
func CreateTestRecord(overrides ...func(*domain.RolledInventoryRecord)) domain.RolledInventoryRecord {
	rec := domain.RolledInventoryRecord{
		Style:           "AB123",
		Color:           "Navy",
		Commodity:       "Knit Top",
		Sizes:           []string{"M", "L"},
		TotalRemaining:  15,
		TotalValue:      decimal.RequireFromString("75.00"),
		TotalCurrent:    18,
		TotalCommitted:  3,
		UnitCostAvg:     decimal.RequireFromString("5.2500"),
		AgeDays:         430,
		AgeBracket:      "1 year+",
		LastStockInDate: "2025-06-15",
		PurchaseOrderNo: "PO-9921",
		ImageURL:        "http://cad/ab123.jpg",
		UpdatedAt:       time.Now(),
	}

	for _, override := range overrides {
		override(&rec)
	}

	return rec
}

// CreateTestRecords creates distinct aggregates spread over age brackets
func CreateTestRecords(count int) []domain.RolledInventoryRecord {
	brackets := []struct {
		days    int
		bracket string
	}{
		{45, "1-3 months"},
		{120, "3-6 months"},
		{250, "6-12 months"},
		{430, "1 year+"},
	}

	records := make([]domain.RolledInventoryRecord, count)
	for i := 0; i < count; i++ {
		b := brackets[i%len(brackets)]
		records[i] = CreateTestRecord(func(rec *domain.RolledInventoryRecord) {
			rec.Style = fmt.Sprintf("ST%03d", i+1)
			rec.Color = fmt.Sprintf("Color%d", i%3)
			rec.AgeDays = b.days
			rec.AgeBracket = b.bracket
			rec.TotalRemaining = int64(5 + i)
		})
	}

	return records
}

// CompareRecords compares two aggregates ignoring timestamps
func CompareRecords(t *testing.T, expected, actual *domain.RolledInventoryRecord) {
	t.Helper()

	require.Equal(t, expected.Style, actual.Style)
	require.Equal(t, expected.Color, actual.Color)
	require.Equal(t, expected.Commodity, actual.Commodity)
	require.Equal(t, expected.Sizes, actual.Sizes)
	require.Equal(t, expected.TotalRemaining, actual.TotalRemaining)
	require.True(t, expected.TotalValue.Equal(actual.TotalValue),
		"total_value: expected %s, got %s", expected.TotalValue, actual.TotalValue)
	require.Equal(t, expected.TotalCurrent, actual.TotalCurrent)
	require.Equal(t, expected.TotalCommitted, actual.TotalCommitted)
	require.True(t, expected.UnitCostAvg.Equal(actual.UnitCostAvg),
		"unit_cost_avg: expected %s, got %s", expected.UnitCostAvg, actual.UnitCostAvg)
	require.Equal(t, expected.AgeDays, actual.AgeDays)
	require.Equal(t, expected.AgeBracket, actual.AgeBracket)
	require.Equal(t, expected.PurchaseOrderNo, actual.PurchaseOrderNo)
	require.Equal(t, expected.ImageURL, actual.ImageURL)
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"cdn_credentials",
		"catalog_images",
		"aggregates",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp("", fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	file.Close()

	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	return file.Name()
}
