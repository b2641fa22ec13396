// internal/core/services/aggregator.go
package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agestock/agestock-be/internal/core/domain"
)

// ImageLookup resolves a style to a cached catalog image reference. It is a
// snapshot: aggregation consults it once per group and never re-resolves.
type ImageLookup func(style string) (string, bool)

// NoImages is the lookup used when no catalog snapshot is available.
func NoImages(string) (string, bool) { return "", false }

// RollupResult is the outcome of folding one batch of raw rows.
type RollupResult struct {
	Records []domain.RolledInventoryRecord
	RowsIn  int
	Groups  int
	Skipped int
}

// rollupGroup carries the intermediate fold state for one (style, color) key.
type rollupGroup struct {
	rec        domain.RolledInventoryRecord
	sizeTokens []string
	costSum    decimal.Decimal
	costCount  int64
	valueSum   decimal.Decimal
	imageLink  string
	ageSet     bool
}

// fieldRule is one entry of the merge policy: how a single output field (or
// an atomically linked set of fields) absorbs each raw row. Rules are applied
// in order, per row, in input order, so each field's semantics are testable
// in isolation and cannot drift apart silently.
type fieldRule struct {
	name  string
	apply func(g *rollupGroup, row domain.RawInventoryRow)
}

var mergePolicy = []fieldRule{
	{
		// First non-blank wins, never overwritten afterward.
		name: "commodity",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			if g.rec.Commodity == "" {
				g.rec.Commodity = strings.TrimSpace(row.Commodity)
			}
		},
	},
	{
		// Every trimmed token joins the multiset; dedup happens at resolution.
		name: "sizes",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			if t := strings.TrimSpace(row.Size); t != "" {
				g.sizeTokens = append(g.sizeTokens, t)
			}
		},
	},
	{
		name: "total_remaining",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			g.rec.TotalRemaining += domain.ParseCount(row.RemainingStock)
		},
	},
	{
		name: "total_value",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			g.valueSum = g.valueSum.Add(domain.ParseAmount(row.RemainingAssetValue))
		},
	},
	{
		name: "total_current",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			g.rec.TotalCurrent += domain.ParseCount(row.CurrentStock)
		},
	},
	{
		name: "total_committed",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			g.rec.TotalCommitted += domain.ParseCount(row.CommittedStock)
		},
	},
	{
		// Age days, bracket and stock-in date move together, only on a
		// strictly greater age. Ties keep the earliest qualifying row's trio.
		name: "age_trio",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			age := domain.ParseAgeDays(row.InventoryAge)
			if g.ageSet && age <= g.rec.AgeDays {
				return
			}
			g.ageSet = true
			g.rec.AgeDays = age
			g.rec.AgeBracket = strings.TrimSpace(row.AgeBracket)
			g.rec.LastStockInDate = strings.TrimSpace(row.LastStockInDate)
		},
	},
	{
		// Last non-blank wins.
		name: "purchase_order_no",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			if po := strings.TrimSpace(row.PurchaseOrderNo); po != "" {
				g.rec.PurchaseOrderNo = po
			}
		},
	},
	{
		// Running sum and count; resolved to the unweighted mean at the end.
		name: "unit_cost",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			g.costSum = g.costSum.Add(domain.ParseAmount(row.UnitCost))
			g.costCount++
		},
	},
	{
		// Last non-blank in-batch link wins; catalog fallback at resolution.
		name: "image_link",
		apply: func(g *rollupGroup, row domain.RawInventoryRow) {
			if link := strings.TrimSpace(row.ImageLink); link != "" {
				g.imageLink = link
			}
		},
	},
}

// Aggregate folds raw rows into (style, color) aggregates under the merge
// policy. Rows with a blank style are dropped. Output order follows the first
// appearance of each key, though callers must not rely on it.
func Aggregate(rows []domain.RawInventoryRow, images ImageLookup) RollupResult {
	if images == nil {
		images = NoImages
	}

	groups := make(map[domain.GroupKey]*rollupGroup)
	var order []domain.GroupKey
	skipped := 0

	for _, row := range rows {
		key := domain.KeyFor(row)
		if key.Style == "" {
			skipped++
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &rollupGroup{
				rec: domain.RolledInventoryRecord{
					Style: key.Style,
					Color: key.Color,
				},
				costSum:  decimal.Zero,
				valueSum: decimal.Zero,
			}
			groups[key] = g
			order = append(order, key)
		}

		for _, rule := range mergePolicy {
			rule.apply(g, row)
		}
	}

	records := make([]domain.RolledInventoryRecord, 0, len(order))
	for _, key := range order {
		records = append(records, resolveGroup(groups[key], images))
	}

	return RollupResult{
		Records: records,
		RowsIn:  len(rows),
		Groups:  len(records),
		Skipped: skipped,
	}
}

// resolveGroup finishes a group: size canonicalization, mean and value
// rounding, and the image priority chain.
func resolveGroup(g *rollupGroup, images ImageLookup) domain.RolledInventoryRecord {
	rec := g.rec
	rec.Sizes = domain.ResolveSizes(g.sizeTokens)
	rec.TotalValue = g.valueSum.Round(2)
	if g.costCount > 0 {
		rec.UnitCostAvg = g.costSum.Div(decimal.NewFromInt(g.costCount)).Round(4)
	} else {
		rec.UnitCostAvg = decimal.Zero
	}

	switch {
	case g.imageLink != "":
		rec.ImageURL = g.imageLink
	default:
		if url, ok := images(rec.Style); ok {
			rec.ImageURL = url
		}
	}

	return rec
}
