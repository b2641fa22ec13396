// internal/core/ports/services.go
package ports

import (
	"context"
	"errors"

	"github.com/agestock/agestock-be/internal/core/domain"
)

// ErrNoToken signals that no valid access token could be produced. Callers
// proceed without authorization rather than aborting their own operation.
var ErrNoToken = errors.New("no access token available")

// ImportSummary reports the outcome of one low-value import.
type ImportSummary struct {
	RowsIn  int `json:"rows_in"`
	Groups  int `json:"groups"`
	Skipped int `json:"skipped"`
}

// CatalogImportSummary reports the outcome of one catalog-format import.
type CatalogImportSummary struct {
	RowsIn     int   `json:"rows_in"`
	Upserted   int   `json:"upserted"`
	Skipped    int   `json:"skipped"`
	Backfilled int64 `json:"backfilled"`
}

// RollupService folds raw low-value rows into persisted aggregates and owns
// the operator flag lifecycle.
type RollupService interface {
	ImportLowValue(ctx context.Context, rows []domain.RawInventoryRow) (*ImportSummary, error)
	ImportCatalog(ctx context.Context, refs []domain.CatalogImageRef) (*CatalogImportSummary, error)
	SetFlag(ctx context.Context, key domain.GroupKey, flagged bool) error
	Get(ctx context.Context, key domain.GroupKey) (*domain.RolledInventoryRecord, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

// SyncService reconciles the cross-reference cache against the external
// catalog and repairs aggregates missing an image.
type SyncService interface {
	// Run executes one pull+backfill pass. Overlapping calls are skipped;
	// a skipped run returns without error.
	Run(ctx context.Context) error
}

// TokenProvider returns a currently valid access token for the image CDN,
// or ErrNoToken as a soft failure.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}
