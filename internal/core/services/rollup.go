// internal/core/services/rollup.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// RollupOptions tune import behavior.
type RollupOptions struct {
	// ResetFlagsOnImport drops operator flags on every low-value reimport
	// instead of carrying them forward. Off by default so curated state
	// survives routine data refreshes.
	ResetFlagsOnImport bool

	// ReservedStylePrefix marks catalog rows that are not real styles.
	ReservedStylePrefix string
}

// RollupService folds low-value imports into aggregates and owns flag
// updates. It is the single writer of the aggregate table.
type RollupService struct {
	aggregates ports.AggregateRepository
	catalog    ports.CatalogRepository
	cache      ports.CacheRepository
	opts       RollupOptions
	logger     *slog.Logger
}

// Statically assert that *RollupService implements the RollupService port.
var _ ports.RollupService = (*RollupService)(nil)

// NewRollupService creates a new rollup service. cache may be nil.
func NewRollupService(
	aggregates ports.AggregateRepository,
	catalog ports.CatalogRepository,
	cache ports.CacheRepository,
	opts RollupOptions,
	logger *slog.Logger,
) *RollupService {
	if opts.ReservedStylePrefix == "" {
		opts.ReservedStylePrefix = "#"
	}
	return &RollupService{
		aggregates: aggregates,
		catalog:    catalog,
		cache:      cache,
		opts:       opts,
		logger:     logger.With(slog.String("service", "rollup")),
	}
}

// ImportLowValue aggregates one batch of raw rows and replaces the persisted
// aggregate set with the result. Flags are carried forward unless the reset
// policy is enabled.
func (s *RollupService) ImportLowValue(ctx context.Context, rows []domain.RawInventoryRow) (*ports.ImportSummary, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot catalog cache: %w", err)
	}

	result := Aggregate(rows, func(style string) (string, bool) {
		url, ok := snapshot[style]
		return url, ok && url != ""
	})

	now := time.Now()
	for i := range result.Records {
		result.Records[i].UpdatedAt = now
	}

	if err := s.aggregates.ReplaceAll(ctx, result.Records, s.opts.ResetFlagsOnImport); err != nil {
		return nil, fmt.Errorf("failed to replace aggregates: %w", err)
	}

	s.invalidateDashboard(ctx)

	s.logger.InfoContext(ctx, "low-value import applied",
		slog.Int("rows_in", result.RowsIn),
		slog.Int("groups", result.Groups),
		slog.Int("skipped", result.Skipped),
		slog.Bool("flags_reset", s.opts.ResetFlagsOnImport))

	return &ports.ImportSummary{
		RowsIn:  result.RowsIn,
		Groups:  result.Groups,
		Skipped: result.Skipped,
	}, nil
}

// ImportCatalog merges catalog-format (style, image) rows into the
// cross-reference cache using the same upsert rule as the external sync,
// then backfills aggregates missing an image. Rows whose style carries the
// reserved prefix, or whose image is blank, are skipped.
func (s *RollupService) ImportCatalog(ctx context.Context, refs []domain.CatalogImageRef) (*ports.CatalogImportSummary, error) {
	kept := make([]domain.CatalogImageRef, 0, len(refs))
	for _, ref := range refs {
		style := strings.TrimSpace(ref.Style)
		url := strings.TrimSpace(ref.ImageURL)
		if style == "" || url == "" || strings.HasPrefix(style, s.opts.ReservedStylePrefix) {
			continue
		}
		kept = append(kept, domain.CatalogImageRef{Style: style, ImageURL: url})
	}

	if len(kept) > 0 {
		if err := s.catalog.UpsertBatch(ctx, kept); err != nil {
			return nil, fmt.Errorf("failed to upsert catalog entries: %w", err)
		}
	}

	backfilled, err := s.aggregates.BackfillImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to backfill aggregate images: %w", err)
	}
	if backfilled > 0 {
		s.invalidateDashboard(ctx)
	}

	s.logger.InfoContext(ctx, "catalog import applied",
		slog.Int("rows_in", len(refs)),
		slog.Int("upserted", len(kept)),
		slog.Int64("backfilled", backfilled))

	return &ports.CatalogImportSummary{
		RowsIn:     len(refs),
		Upserted:   len(kept),
		Skipped:    len(refs) - len(kept),
		Backfilled: backfilled,
	}, nil
}

// SetFlag records an operator liquidation decision on a single aggregate.
func (s *RollupService) SetFlag(ctx context.Context, key domain.GroupKey, flagged bool) error {
	if err := s.aggregates.UpdateFlag(ctx, key, flagged); err != nil {
		return fmt.Errorf("failed to update flag: %w", err)
	}

	s.invalidateDashboard(ctx)

	s.logger.InfoContext(ctx, "aggregate flag updated",
		slog.String("style", key.Style),
		slog.String("color", key.Color),
		slog.Bool("flagged", flagged))
	return nil
}

// Get retrieves a single aggregate by its natural key.
func (s *RollupService) Get(ctx context.Context, key domain.GroupKey) (*domain.RolledInventoryRecord, error) {
	rec, err := s.aggregates.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregate: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("aggregate not found: %s/%s", key.Style, key.Color)
	}
	return rec, nil
}

// List retrieves aggregates with filtering and pagination.
func (s *RollupService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	result, err := s.aggregates.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list aggregates: %w", err)
	}
	return result, nil
}

// Stats returns dashboard totals straight from the repository; callers that
// want caching go through the dashboard handler's cache layer.
func (s *RollupService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	stats, err := s.aggregates.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

func (s *RollupService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "dash:*"); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate dashboard cache",
			slog.String("error", err.Error()))
	}
}
