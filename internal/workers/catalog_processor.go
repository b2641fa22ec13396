// internal/workers/catalog_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/agestock/agestock-be/internal/core/ports"
)

// CatalogProcessor runs catalog synchronization tasks, both the scheduled
// recurring pass and on-demand runs enqueued from the API.
type CatalogProcessor struct {
	sync   ports.SyncService
	logger *slog.Logger
}

// NewCatalogProcessor creates a new catalog sync processor
func NewCatalogProcessor(sync ports.SyncService, logger *slog.Logger) *CatalogProcessor {
	return &CatalogProcessor{
		sync:   sync,
		logger: logger.With(slog.String("processor", "catalog_sync")),
	}
}

// ProcessSync executes one pull+backfill pass against the external catalog.
func (p *CatalogProcessor) ProcessSync(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "running catalog sync")

	if err := p.sync.Run(ctx); err != nil {
		return fmt.Errorf("catalog sync failed: %w", err)
	}

	p.logger.InfoContext(ctx, "catalog sync completed")
	return nil
}
