// cmd/seeder/main.go
//
// Direct loader for local development and backfills. Reads low-value and
// catalog export files from disk and ingests them through the same rollup
// pipeline the worker uses, without going through Redis or the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agestock/agestock-be/internal/adapters/db"
	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/services"
	"github.com/agestock/agestock-be/internal/workers"
)

func main() {
	var (
		catalogFile  = flag.String("catalog", "", "Catalog export file (xlsx or csv) loaded before inventory")
		lowValueFile = flag.String("lowvalue", "", "Low-value export file (xlsx or csv)")
		lowValueDir  = flag.String("lowvalue-dir", "", "Directory of low-value exports; the lexically last file wins")
		resetFlags   = flag.Bool("reset-flags", false, "Clear review flags instead of carrying them forward")
		logLevel     = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun       = flag.Bool("dry-run", false, "Parse and aggregate without writing to the database")
	)
	flag.Parse()

	var slogLevel slog.Level
	switch *logLevel {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)

	if *lowValueFile == "" && *lowValueDir == "" && *catalogFile == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -catalog, -lowvalue, or -lowvalue-dir")
		os.Exit(2)
	}

	ctx := context.Background()

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "agestock"),
		getEnv("DB_PASSWORD", "agestock_dev_2026"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "agestock"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	var database *db.Database
	if !*dryRun {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		database = db.FromPool(pool, logger)
	}

	if *dryRun {
		runDryRun(*catalogFile, *lowValueFile, *lowValueDir, logger)
		return
	}

	aggregateRepo := db.NewAggregateRepository(database, logger)
	catalogRepo := db.NewCatalogRepository(database, logger)
	service := services.NewRollupService(aggregateRepo, catalogRepo, nil, services.RollupOptions{
		ResetFlagsOnImport: *resetFlags,
	}, logger)

	// Catalog first so the import resolves images from a warm cache.
	if *catalogFile != "" {
		refs, err := readCatalogRefs(*catalogFile)
		if err != nil {
			logger.Error("failed to read catalog file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		summary, err := service.ImportCatalog(ctx, refs)
		if err != nil {
			logger.Error("catalog import failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("catalog: %d rows in, %d upserted, %d skipped, %d aggregates backfilled\n",
			summary.RowsIn, summary.Upserted, summary.Skipped, summary.Backfilled)
	}

	lowValue := pickLowValueFile(*lowValueFile, *lowValueDir, logger)
	if lowValue != "" {
		rows, err := readLowValueRows(lowValue)
		if err != nil {
			logger.Error("failed to read low-value file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		summary, err := service.ImportLowValue(ctx, rows)
		if err != nil {
			logger.Error("low-value import failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("low-value: %d rows in, %d groups, %d skipped\n",
			summary.RowsIn, summary.Groups, summary.Skipped)
	}

	logger.Info("seed operation completed")
}

// runDryRun aggregates in memory and prints what an import would produce.
func runDryRun(catalogFile, lowValueFile, lowValueDir string, logger *slog.Logger) {
	images := map[string]string{}

	if catalogFile != "" {
		refs, err := readCatalogRefs(catalogFile)
		if err != nil {
			logger.Error("failed to read catalog file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, ref := range refs {
			style := strings.TrimSpace(ref.Style)
			if style != "" && ref.ImageURL != "" {
				images[style] = ref.ImageURL
			}
		}
		fmt.Printf("[dry-run] catalog: %d refs, %d usable\n", len(refs), len(images))
	}

	lowValue := pickLowValueFile(lowValueFile, lowValueDir, logger)
	if lowValue == "" {
		return
	}

	rows, err := readLowValueRows(lowValue)
	if err != nil {
		logger.Error("failed to read low-value file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result := services.Aggregate(rows, func(style string) (string, bool) {
		url, ok := images[style]
		return url, ok && url != ""
	})

	fmt.Printf("[dry-run] low-value: %d rows in, %d groups, %d skipped\n",
		len(rows), len(result.Records), result.Skipped)
	for i, rec := range result.Records {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(result.Records)-10)
			break
		}
		fmt.Printf("  %s/%s sizes=%v remaining=%d value=%s age=%d\n",
			rec.Style, rec.Color, rec.Sizes, rec.TotalRemaining, rec.TotalValue.StringFixed(2), rec.AgeDays)
	}
}

// pickLowValueFile resolves the single low-value export to load. When a
// directory is given the lexically last spreadsheet wins, matching the
// date-stamped naming of the upstream exports.
func pickLowValueFile(file, dir string, logger *slog.Logger) string {
	if file != "" {
		return file
	}
	if dir == "" {
		return ""
	}

	var candidates []string
	for _, pattern := range []string{"*.xlsx", "*.csv"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil {
			candidates = append(candidates, matches...)
		}
	}
	if len(candidates) == 0 {
		logger.Warn("no low-value exports found", slog.String("dir", dir))
		return ""
	}

	sort.Strings(candidates)
	chosen := candidates[len(candidates)-1]
	logger.Info("selected low-value export",
		slog.String("file", chosen),
		slog.Int("candidates", len(candidates)))
	return chosen
}

func readLowValueRows(filePath string) ([]domain.RawInventoryRow, error) {
	records, err := workers.ReadRecords(filePath)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.RawInventoryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.RawRowFromRecord(rec))
	}
	return rows, nil
}

func readCatalogRefs(filePath string) ([]domain.CatalogImageRef, error) {
	records, err := workers.ReadRecords(filePath)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.CatalogImageRef, 0, len(records))
	for _, rec := range records {
		style := rec[domain.FieldStyleName]
		if style == "" {
			style = rec[domain.FieldStyle]
		}
		refs = append(refs, domain.CatalogImageRef{
			Style:    style,
			ImageURL: rec[domain.FieldStyleImage],
		})
	}
	return refs, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
