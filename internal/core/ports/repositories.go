// internal/core/ports/repositories.go
package ports

import (
	"context"
	"errors"

	"github.com/agestock/agestock-be/internal/core/domain"
)

// ErrSourceUnavailable signals that an external read-only collaborator is not
// configured or not reachable. Consumers treat it as a soft failure.
var ErrSourceUnavailable = errors.New("external source unavailable")

// ErrNoCredential signals that no refresh credential could be resolved.
var ErrNoCredential = errors.New("no refresh credential available")

// ListParams holds filters and pagination for listing aggregates.
type ListParams struct {
	Style      string
	Commodity  string
	AgeBracket string
	Flagged    *bool
	MinAgeDays int
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// ListResult holds one page of aggregates.
type ListResult struct {
	Records    []*domain.RolledInventoryRecord `json:"records"`
	Page       int                             `json:"page"`
	PageSize   int                             `json:"page_size"`
	TotalCount int64                           `json:"total_count"`
	TotalPages int                             `json:"total_pages"`
}

// DashboardStats are the rollup totals served on the dashboard.
type DashboardStats struct {
	Groups       int64            `json:"groups"`
	UnitsOnHand  int64            `json:"units_on_hand"`
	TotalValue   string           `json:"total_value"`
	Flagged      int64            `json:"flagged"`
	ByAgeBracket map[string]int64 `json:"by_age_bracket"`
}

// AggregateRepository is the persistence port for rolled inventory records.
type AggregateRepository interface {
	// ReplaceAll makes the stored aggregate set equal to records: a keyed
	// upsert of every record followed by pruning of keys absent from the
	// batch. Unless resetFlags is set, the flagged state of an existing
	// record sharing a (style, color) key is carried forward.
	ReplaceAll(ctx context.Context, records []domain.RolledInventoryRecord, resetFlags bool) error

	// UpdateFlag sets the operator-curated flag on a single aggregate.
	UpdateFlag(ctx context.Context, key domain.GroupKey, flagged bool) error

	FindByKey(ctx context.Context, key domain.GroupKey) (*domain.RolledInventoryRecord, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Stats(ctx context.Context) (*DashboardStats, error)

	// BackfillImages fills the image URL of every aggregate that has none
	// from the cross-reference cache. It never overwrites a populated URL
	// and is safe to re-run. Returns the number of repaired rows.
	BackfillImages(ctx context.Context) (int64, error)
}

// CatalogRepository is the persistence port for the style image
// cross-reference cache. Entries accumulate monotonically.
type CatalogRepository interface {
	Upsert(ctx context.Context, style, imageURL string) error
	UpsertBatch(ctx context.Context, refs []domain.CatalogImageRef) error
	Find(ctx context.Context, style string) (*domain.CatalogImageEntry, error)
	// Snapshot returns the full style to image mapping at this instant.
	Snapshot(ctx context.Context) (map[string]string, error)
}

// CatalogSource reads (style, image) pairs from the external product catalog.
// Implementations return ErrSourceUnavailable when not configured or when the
// source cannot be reached.
type CatalogSource interface {
	FetchImageRefs(ctx context.Context) ([]domain.CatalogImageRef, error)
}

// CredentialSource reads the most recently updated refresh credential from
// an external store.
type CredentialSource interface {
	LatestRefreshToken(ctx context.Context) (string, error)
}
