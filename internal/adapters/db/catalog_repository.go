// internal/adapters/db/catalog_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

// catalogRepository implements ports.CatalogRepository
type catalogRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCatalogRepository creates a new catalog cross-reference repository
func NewCatalogRepository(db *Database, logger *slog.Logger) ports.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog")),
	}
}

const catalogUpsert = `
	INSERT INTO catalog_images (style, image_url, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (style) DO UPDATE SET
		image_url = EXCLUDED.image_url,
		updated_at = EXCLUDED.updated_at`

// Upsert inserts or overwrites the image reference for one style
func (r *catalogRepository) Upsert(ctx context.Context, style, imageURL string) error {
	style = strings.TrimSpace(style)
	if style == "" {
		return fmt.Errorf("style is required")
	}

	if _, err := r.db.Exec(ctx, catalogUpsert, style, imageURL, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert catalog entry: %w", err)
	}
	return nil
}

// UpsertBatch applies the single-entry upsert rule to a whole batch in one
// transaction. Blank styles are skipped, matching both ingestion paths.
func (r *catalogRepository) UpsertBatch(ctx context.Context, refs []domain.CatalogImageRef) error {
	if len(refs) == 0 {
		return nil
	}

	now := time.Now()
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		queued := 0
		for _, ref := range refs {
			style := strings.TrimSpace(ref.Style)
			if style == "" {
				continue
			}
			batch.Queue(catalogUpsert, style, ref.ImageURL, now)
			queued++
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := 0; i < queued; i++ {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to upsert catalog entry %d: %w", i, err)
			}
		}
		return nil
	})
}

// Find retrieves one entry by style, nil if absent
func (r *catalogRepository) Find(ctx context.Context, style string) (*domain.CatalogImageEntry, error) {
	query := `SELECT style, image_url, updated_at FROM catalog_images WHERE style = $1`

	entry := &domain.CatalogImageEntry{}
	err := r.db.QueryRow(ctx, query, style).Scan(&entry.Style, &entry.ImageURL, &entry.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find catalog entry: %w", err)
	}
	return entry, nil
}

// Snapshot returns the full style to image mapping at this instant
func (r *catalogRepository) Snapshot(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT style, image_url FROM catalog_images`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog entries: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[string]string)
	for rows.Next() {
		var style, imageURL string
		if err := rows.Scan(&style, &imageURL); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		snapshot[style] = imageURL
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return snapshot, nil
}
