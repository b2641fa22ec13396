// internal/core/domain/rollup.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawInventoryRow is one ingested record at SKU/size grain. All fields arrive
// as free text from the upstream export; any of them may be blank. Rows are
// consumed once during an import and never persisted.
type RawInventoryRow struct {
	Style               string
	Color               string
	Commodity           string
	Size                string
	RemainingStock      string
	RemainingAssetValue string
	CurrentStock        string
	CommittedStock      string
	UnitCost            string
	InventoryAge        string
	AgeBracket          string
	LastStockInDate     string
	PurchaseOrderNo     string
	ImageLink           string
}

// Low-value export column names, as produced by the upstream system.
const (
	FieldStyle               = "Style"
	FieldColor               = "Color"
	FieldCommodity           = "Commodity"
	FieldSize                = "Size"
	FieldRemainingStock      = "Remaining_Stock"
	FieldRemainingAssetValue = "Remaining_Asset_Value"
	FieldCurrentStock        = "Current_Stock"
	FieldCommittedStock      = "Committed_Stock"
	FieldInventoryAge        = "Inventory_Age"
	FieldAgeBracket          = "Age_Bracket"
	FieldTrscDate            = "Trsc_Date"
	FieldPONo                = "PO_No"
	FieldUnitCost            = "Unit_Cost"
	FieldCADLink             = "CAD_Link"
)

// Catalog-format export column names.
const (
	FieldStyleName  = "Style Name"
	FieldStyleImage = "Style Image"
)

// RawRowFromRecord maps one field-named record from the low-value export onto
// a RawInventoryRow. Unknown fields are ignored, missing fields stay blank.
func RawRowFromRecord(rec map[string]string) RawInventoryRow {
	return RawInventoryRow{
		Style:               rec[FieldStyle],
		Color:               rec[FieldColor],
		Commodity:           rec[FieldCommodity],
		Size:                rec[FieldSize],
		RemainingStock:      rec[FieldRemainingStock],
		RemainingAssetValue: rec[FieldRemainingAssetValue],
		CurrentStock:        rec[FieldCurrentStock],
		CommittedStock:      rec[FieldCommittedStock],
		UnitCost:            rec[FieldUnitCost],
		InventoryAge:        rec[FieldInventoryAge],
		AgeBracket:          rec[FieldAgeBracket],
		LastStockInDate:     rec[FieldTrscDate],
		PurchaseOrderNo:     rec[FieldPONo],
		ImageLink:           rec[FieldCADLink],
	}
}

// GroupKey is the aggregation grain: a trimmed style+color pair.
type GroupKey struct {
	Style string
	Color string
}

// KeyFor builds the group key for a raw row. A zero Style means the row does
// not participate in aggregation.
func KeyFor(row RawInventoryRow) GroupKey {
	return GroupKey{
		Style: strings.TrimSpace(row.Style),
		Color: strings.TrimSpace(row.Color),
	}
}

// RolledInventoryRecord is the persisted style+color aggregate produced by
// folding raw rows. One record per distinct (style, color) per import.
type RolledInventoryRecord struct {
	Style           string          `json:"style"`
	Color           string          `json:"color"`
	Commodity       string          `json:"commodity,omitempty"`
	Sizes           []string        `json:"sizes"`
	TotalRemaining  int64           `json:"total_remaining"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCurrent    int64           `json:"total_current"`
	TotalCommitted  int64           `json:"total_committed"`
	UnitCostAvg     decimal.Decimal `json:"unit_cost_avg"`
	AgeDays         int             `json:"age_days"`
	AgeBracket      string          `json:"age_bracket,omitempty"`
	LastStockInDate string          `json:"last_stock_in_date,omitempty"`
	PurchaseOrderNo string          `json:"purchase_order_no,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	Flagged         bool            `json:"flagged"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Key returns the record's natural key.
func (r *RolledInventoryRecord) Key() GroupKey {
	return GroupKey{Style: r.Style, Color: r.Color}
}

// CatalogImageEntry is one row of the cross-reference cache mapping a style
// to its known-good image reference. Entries are upserted, never deleted.
type CatalogImageEntry struct {
	Style     string    `json:"style"`
	ImageURL  string    `json:"image_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogImageRef is a (style, image) pair as read from an external source,
// before it has been merged into the cache.
type CatalogImageRef struct {
	Style    string `json:"style"`
	ImageURL string `json:"image_url"`
}

// AccessCredential is the process-wide cached token for the image CDN. It is
// replaced wholesale on refresh and holds nothing longer-lived than the
// short-lived access token itself.
type AccessCredential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Expired reports whether the credential can no longer be used at the given
// instant. The refresh safety margin is already folded into ExpiresAt.
func (c AccessCredential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
