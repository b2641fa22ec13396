// internal/adapters/db/aggregate_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/ports"
)

var aggregateColumns = []string{
	"style", "color", "commodity", "sizes",
	"total_remaining", "total_value", "total_current", "total_committed",
	"unit_cost_avg", "age_days", "age_bracket", "last_stock_in_date",
	"purchase_order_no", "image_url", "flagged", "updated_at",
}

// aggregateRepository implements ports.AggregateRepository
type aggregateRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewAggregateRepository creates a new aggregate repository
func NewAggregateRepository(db *Database, logger *slog.Logger) ports.AggregateRepository {
	return &aggregateRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "aggregate")),
	}
}

// ReplaceAll makes the stored aggregate set equal to records, inside one
// transaction: a keyed upsert of every record, then pruning of keys absent
// from the batch. The upsert deliberately leaves `flagged` untouched on
// conflict so operator-curated state survives reimports, unless resetFlags
// asks for the review-each-cycle policy.
func (r *aggregateRepository) ReplaceAll(ctx context.Context, records []domain.RolledInventoryRecord, resetFlags bool) error {
	upsert := `
		INSERT INTO aggregates (
			style, color, commodity, sizes,
			total_remaining, total_value, total_current, total_committed,
			unit_cost_avg, age_days, age_bracket, last_stock_in_date,
			purchase_order_no, image_url, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (style, color) DO UPDATE SET
			commodity = EXCLUDED.commodity,
			sizes = EXCLUDED.sizes,
			total_remaining = EXCLUDED.total_remaining,
			total_value = EXCLUDED.total_value,
			total_current = EXCLUDED.total_current,
			total_committed = EXCLUDED.total_committed,
			unit_cost_avg = EXCLUDED.unit_cost_avg,
			age_days = EXCLUDED.age_days,
			age_bracket = EXCLUDED.age_bracket,
			last_stock_in_date = EXCLUDED.last_stock_in_date,
			purchase_order_no = EXCLUDED.purchase_order_no,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at`
	if resetFlags {
		upsert += `,
			flagged = FALSE`
	}

	prune := `
		DELETE FROM aggregates a
		WHERE NOT EXISTS (
			SELECT 1 FROM unnest($1::text[], $2::text[]) AS k(style, color)
			WHERE k.style = a.style AND k.color = a.color
		)`

	styles := make([]string, len(records))
	colors := make([]string, len(records))
	for i := range records {
		styles[i] = records[i].Style
		colors[i] = records[i].Color
	}

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range records {
			rec := &records[i]
			batch.Queue(upsert,
				rec.Style, rec.Color, rec.Commodity, strings.Join(rec.Sizes, ","),
				rec.TotalRemaining, rec.TotalValue, rec.TotalCurrent, rec.TotalCommitted,
				rec.UnitCostAvg, rec.AgeDays, rec.AgeBracket, rec.LastStockInDate,
				rec.PurchaseOrderNo, rec.ImageURL, rec.UpdatedAt,
			)
		}
		batch.Queue(prune, styles, colors)

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := 0; i < len(records); i++ {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to upsert aggregate %s/%s: %w",
					records[i].Style, records[i].Color, err)
			}
		}
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to prune stale aggregates: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "aggregate set replaced",
		slog.Int("records", len(records)),
		slog.Bool("flags_reset", resetFlags))
	return nil
}

// UpdateFlag sets the operator flag on a single aggregate
func (r *aggregateRepository) UpdateFlag(ctx context.Context, key domain.GroupKey, flagged bool) error {
	query := `UPDATE aggregates SET flagged = $3, updated_at = $4 WHERE style = $1 AND color = $2`

	tag, err := r.db.Exec(ctx, query, key.Style, key.Color, flagged, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("aggregate not found: %s/%s", key.Style, key.Color)
	}

	return nil
}

// FindByKey retrieves a single aggregate, nil if absent
func (r *aggregateRepository) FindByKey(ctx context.Context, key domain.GroupKey) (*domain.RolledInventoryRecord, error) {
	query := `SELECT ` + strings.Join(aggregateColumns, ", ") + `
		FROM aggregates WHERE style = $1 AND color = $2`

	rec, err := scanAggregate(r.db.QueryRow(ctx, query, key.Style, key.Color))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find aggregate: %w", err)
	}
	return rec, nil
}

// List retrieves aggregates with filtering and pagination
func (r *aggregateRepository) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Style != "" {
			qb = qb.Where("style ILIKE ?", "%"+params.Style+"%")
		}
		if params.Commodity != "" {
			qb = qb.Where(squirrel.Eq{"commodity": params.Commodity})
		}
		if params.AgeBracket != "" {
			qb = qb.Where(squirrel.Eq{"age_bracket": params.AgeBracket})
		}
		if params.Flagged != nil {
			qb = qb.Where(squirrel.Eq{"flagged": *params.Flagged})
		}
		if params.MinAgeDays > 0 {
			qb = qb.Where(squirrel.GtOrEq{"age_days": params.MinAgeDays})
		}
		return qb
	}

	countSQL, countArgs, err := applyFilters(
		squirrel.Select("COUNT(*)").From("aggregates").PlaceholderFormat(squirrel.Dollar),
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count aggregates: %w", err)
	}

	qb := applyFilters(
		squirrel.Select(aggregateColumns...).From("aggregates").PlaceholderFormat(squirrel.Dollar),
	)

	direction := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		direction = "DESC"
	}
	orderBy := "age_days DESC"
	switch params.SortBy {
	case "style":
		orderBy = "style " + direction + ", color " + direction
	case "value":
		orderBy = "total_value " + direction
	case "remaining":
		orderBy = "total_remaining " + direction
	case "updated":
		orderBy = "updated_at " + direction
	case "age":
		orderBy = "age_days " + direction
	}
	qb = qb.OrderBy(orderBy)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	qb = qb.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	listSQL, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}
	defer rows.Close()

	var records []*domain.RolledInventoryRecord
	for rows.Next() {
		rec, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aggregate: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return &ports.ListResult{
		Records:    records,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// Stats computes the dashboard totals over the whole aggregate table
func (r *aggregateRepository) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{ByAgeBracket: make(map[string]int64)}

	query := `
		SELECT COUNT(*),
			COALESCE(SUM(total_remaining), 0),
			COALESCE(SUM(total_value), 0)::text,
			COUNT(*) FILTER (WHERE flagged)
		FROM aggregates`

	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Groups, &stats.UnitsOnHand, &stats.TotalValue, &stats.Flagged,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(NULLIF(age_bracket, ''), 'unknown'), COUNT(*)
		 FROM aggregates GROUP BY 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute age brackets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bracket string
		var count int64
		if err := rows.Scan(&bracket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan age bracket: %w", err)
		}
		stats.ByAgeBracket[bracket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stats, nil
}

// BackfillImages repairs aggregates missing an image from the cross-reference
// cache. Strictly additive: a populated image_url is never overwritten.
func (r *aggregateRepository) BackfillImages(ctx context.Context) (int64, error) {
	query := `
		UPDATE aggregates a
		SET image_url = c.image_url, updated_at = $1
		FROM catalog_images c
		WHERE c.style = a.style
		  AND c.image_url <> ''
		  AND (a.image_url IS NULL OR a.image_url = '')`

	tag, err := r.db.Exec(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to backfill images: %w", err)
	}

	if n := tag.RowsAffected(); n > 0 {
		r.logger.InfoContext(ctx, "backfilled aggregate images", slog.Int64("rows", n))
		return n, nil
	}
	return 0, nil
}

// scanAggregate scans one aggregate row from either a pgx.Row or pgx.Rows
func scanAggregate(row pgx.Row) (*domain.RolledInventoryRecord, error) {
	rec := &domain.RolledInventoryRecord{}
	var commodity, sizes, ageBracket, stockInDate, poNo, imageURL sql.NullString

	err := row.Scan(
		&rec.Style, &rec.Color, &commodity, &sizes,
		&rec.TotalRemaining, &rec.TotalValue, &rec.TotalCurrent, &rec.TotalCommitted,
		&rec.UnitCostAvg, &rec.AgeDays, &ageBracket, &stockInDate,
		&poNo, &imageURL, &rec.Flagged, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Commodity = commodity.String
	rec.AgeBracket = ageBracket.String
	rec.LastStockInDate = stockInDate.String
	rec.PurchaseOrderNo = poNo.String
	rec.ImageURL = imageURL.String
	if sizes.String != "" {
		rec.Sizes = strings.Split(sizes.String, ",")
	}

	return rec, nil
}
