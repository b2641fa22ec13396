// internal/core/services/catalog_sync.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// CatalogSyncService reconciles the local cross-reference cache against the
// external product catalog and repairs persisted aggregates missing an image.
// Run is single-flight: a run that finds another in progress is skipped, so
// the recurring trigger can never overlap with itself or with an on-demand
// trigger.
type CatalogSyncService struct {
	source     ports.CatalogSource
	catalog    ports.CatalogRepository
	aggregates ports.AggregateRepository
	cache      ports.CacheRepository
	logger     *slog.Logger

	mu sync.Mutex
}

// Statically assert that *CatalogSyncService implements the SyncService port.
var _ ports.SyncService = (*CatalogSyncService)(nil)

// NewCatalogSyncService creates a new sync service. cache may be nil.
func NewCatalogSyncService(
	source ports.CatalogSource,
	catalog ports.CatalogRepository,
	aggregates ports.AggregateRepository,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *CatalogSyncService {
	return &CatalogSyncService{
		source:     source,
		catalog:    catalog,
		aggregates: aggregates,
		cache:      cache,
		logger:     logger.With(slog.String("service", "catalog_sync")),
	}
}

// Run executes one sync pass: pull, then backfill. The two steps are not one
// atomic operation; readers may observe partially backfilled aggregates,
// which is acceptable because backfill is monotonic and convergent.
//
// Source unavailability is non-fatal: the pull step logs and leaves the cache
// at its last-known-good state, and backfill still runs against it.
func (s *CatalogSyncService) Run(ctx context.Context) error {
	if !s.mu.TryLock() {
		s.logger.InfoContext(ctx, "catalog sync already in flight, skipping run")
		return nil
	}
	defer s.mu.Unlock()

	s.pull(ctx)

	backfilled, err := s.aggregates.BackfillImages(ctx)
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	if backfilled > 0 && s.cache != nil {
		if cerr := s.cache.DeletePattern(ctx, "dash:*"); cerr != nil {
			s.logger.WarnContext(ctx, "failed to invalidate dashboard cache",
				slog.String("error", cerr.Error()))
		}
	}

	s.logger.InfoContext(ctx, "catalog sync completed",
		slog.Int64("backfilled", backfilled))
	return nil
}

// pull reads all non-blank (style, image) pairs from the external source and
// upserts them into the cache, keyed by trimmed style. Idempotent: repeated
// pulls with identical source data converge to the same cache state.
func (s *CatalogSyncService) pull(ctx context.Context) {
	refs, err := s.source.FetchImageRefs(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrSourceUnavailable) {
			s.logger.WarnContext(ctx, "catalog source unavailable, keeping cached entries",
				slog.String("error", err.Error()))
		} else {
			s.logger.ErrorContext(ctx, "catalog source read failed, keeping cached entries",
				slog.String("error", err.Error()))
		}
		return
	}

	kept := make([]domain.CatalogImageRef, 0, len(refs))
	for _, ref := range refs {
		style := strings.TrimSpace(ref.Style)
		url := strings.TrimSpace(ref.ImageURL)
		if style == "" || url == "" {
			continue
		}
		kept = append(kept, domain.CatalogImageRef{Style: style, ImageURL: url})
	}

	if len(kept) == 0 {
		s.logger.InfoContext(ctx, "catalog source returned no image references")
		return
	}

	if err := s.catalog.UpsertBatch(ctx, kept); err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert catalog entries",
			slog.String("error", err.Error()))
		return
	}

	s.logger.InfoContext(ctx, "catalog cache updated",
		slog.Int("entries", len(kept)))
}
