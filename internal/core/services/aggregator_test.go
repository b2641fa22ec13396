// internal/core/services/aggregator_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/services"
)

func TestAggregate_TwoRowsOneGroup(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{
			Style:               "AB123",
			Color:               "Navy",
			Commodity:           "Knit Top",
			Size:                "M",
			RemainingStock:      "10",
			RemainingAssetValue: "52.50",
			CurrentStock:        "12",
			CommittedStock:      "2",
			UnitCost:            "5.25",
			InventoryAge:        "430",
			AgeBracket:          "1 year+",
			LastStockInDate:     "2025-06-15",
			PurchaseOrderNo:     "PO-9921",
			ImageLink:           "",
		},
		{
			Style:               "AB123",
			Color:               "Navy",
			Commodity:           "Knit Top",
			Size:                "L",
			RemainingStock:      "5",
			RemainingAssetValue: "22.50",
			CurrentStock:        "6",
			CommittedStock:      "1",
			UnitCost:            "5.25",
			InventoryAge:        "410",
			AgeBracket:          "1 year+",
			LastStockInDate:     "2025-07-01",
			PurchaseOrderNo:     "",
			ImageLink:           "http://cad/abc.jpg",
		},
	}

	result := services.Aggregate(rows, nil)

	assert.Equal(t, 2, result.RowsIn)
	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "AB123", rec.Style)
	assert.Equal(t, "Navy", rec.Color)
	assert.Equal(t, "Knit Top", rec.Commodity)
	assert.Equal(t, []string{"M", "L"}, rec.Sizes)
	assert.Equal(t, int64(15), rec.TotalRemaining)
	assert.Equal(t, "75.00", rec.TotalValue.StringFixed(2))
	assert.Equal(t, int64(18), rec.TotalCurrent)
	assert.Equal(t, int64(3), rec.TotalCommitted)
	assert.Equal(t, "5.2500", rec.UnitCostAvg.StringFixed(4))

	// The older row wins the whole age trio
	assert.Equal(t, 430, rec.AgeDays)
	assert.Equal(t, "1 year+", rec.AgeBracket)
	assert.Equal(t, "2025-06-15", rec.LastStockInDate)

	// PO keeps the last non-blank value
	assert.Equal(t, "PO-9921", rec.PurchaseOrderNo)

	// In-batch image link beats the catalog
	assert.Equal(t, "http://cad/abc.jpg", rec.ImageURL)
}

func TestAggregate_BlankStyleRowsSkipped(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "", Color: "Navy", RemainingStock: "100"},
		{Style: "   ", Color: "Red", RemainingStock: "50"},
		{Style: "CD456", Color: "Black", RemainingStock: "7"},
	}

	result := services.Aggregate(rows, nil)

	assert.Equal(t, 3, result.RowsIn)
	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Records, 1)
	assert.Equal(t, int64(7), result.Records[0].TotalRemaining)
}

func TestAggregate_GroupingByStyleAndColor(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", RemainingStock: "1"},
		{Style: "AB123", Color: "Red", RemainingStock: "2"},
		{Style: "AB123", Color: " Navy ", RemainingStock: "3"},
		{Style: "CD456", Color: "Navy", RemainingStock: "4"},
	}

	result := services.Aggregate(rows, nil)

	assert.Equal(t, 3, result.Groups)

	byKey := map[domain.GroupKey]int64{}
	for _, rec := range result.Records {
		byKey[rec.Key()] = rec.TotalRemaining
	}
	assert.Equal(t, int64(4), byKey[domain.GroupKey{Style: "AB123", Color: "Navy"}])
	assert.Equal(t, int64(2), byKey[domain.GroupKey{Style: "AB123", Color: "Red"}])
	assert.Equal(t, int64(4), byKey[domain.GroupKey{Style: "CD456", Color: "Navy"}])
}

func TestAggregate_CommodityFirstNonBlankWins(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", Commodity: ""},
		{Style: "AB123", Color: "Navy", Commodity: "Knit Top"},
		{Style: "AB123", Color: "Navy", Commodity: "Woven Top"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Knit Top", result.Records[0].Commodity)
}

func TestAggregate_POLaterNonBlankOverwrites(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", PurchaseOrderNo: "PO-1111"},
		{Style: "AB123", Color: "Navy", PurchaseOrderNo: ""},
		{Style: "AB123", Color: "Navy", PurchaseOrderNo: "PO-2222"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)

	// A later non-blank PO replaces an earlier one
	assert.Equal(t, "PO-2222", result.Records[0].PurchaseOrderNo)
}

func TestAggregate_AgeTrioLaterGreaterRowWins(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", InventoryAge: "200", AgeBracket: "6-12 months", LastStockInDate: "2025-01-10"},
		{Style: "AB123", Color: "Navy", InventoryAge: "350", AgeBracket: "1 year+", LastStockInDate: "2024-09-05"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)

	// A strictly greater age on a later row moves the whole trio
	rec := result.Records[0]
	assert.Equal(t, 350, rec.AgeDays)
	assert.Equal(t, "1 year+", rec.AgeBracket)
	assert.Equal(t, "2024-09-05", rec.LastStockInDate)
}

func TestAggregate_AgeTrioAtomicOnTies(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", InventoryAge: "200", AgeBracket: "6-12 months", LastStockInDate: "2025-01-10"},
		{Style: "AB123", Color: "Navy", InventoryAge: "200", AgeBracket: "stale bracket", LastStockInDate: "2025-02-20"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)

	// A tie keeps the earlier qualifying row's entire trio
	rec := result.Records[0]
	assert.Equal(t, 200, rec.AgeDays)
	assert.Equal(t, "6-12 months", rec.AgeBracket)
	assert.Equal(t, "2025-01-10", rec.LastStockInDate)
}

func TestAggregate_AgeTrioZeroAgeRowStillSets(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", InventoryAge: "", AgeBracket: "0-1 month", LastStockInDate: "2026-08-01"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, 0, rec.AgeDays)
	assert.Equal(t, "0-1 month", rec.AgeBracket)
	assert.Equal(t, "2026-08-01", rec.LastStockInDate)
}

func TestAggregate_UnitCostMeanIsUnweighted(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", UnitCost: "10.00", RemainingStock: "100"},
		{Style: "AB123", Color: "Navy", UnitCost: "5.00", RemainingStock: "1"},
		{Style: "AB123", Color: "Navy", UnitCost: "2.00", RemainingStock: "1"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)

	// (10 + 5 + 2) / 3, not weighted by stock
	assert.Equal(t, "5.6667", result.Records[0].UnitCostAvg.StringFixed(4))
}

func TestAggregate_UnitCostBlankRowsStillCount(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", UnitCost: "6.00"},
		{Style: "AB123", Color: "Navy", UnitCost: ""},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)

	// Blank parses to zero and still participates in the denominator
	assert.Equal(t, "3.0000", result.Records[0].UnitCostAvg.StringFixed(4))
}

func TestAggregate_TotalValueRounding(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", RemainingAssetValue: "10.123"},
		{Style: "AB123", Color: "Navy", RemainingAssetValue: "0.002"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "10.13", result.Records[0].TotalValue.StringFixed(2))
}

func TestAggregate_ImagePriorityChain(t *testing.T) {
	catalog := map[string]string{
		"AB123": "http://catalog/ab123.jpg",
		"CD456": "http://catalog/cd456.jpg",
	}
	lookup := func(style string) (string, bool) {
		url, ok := catalog[style]
		return url, ok
	}

	rows := []domain.RawInventoryRow{
		// In-batch link wins over the catalog
		{Style: "AB123", Color: "Navy", ImageLink: "http://cad/inline.jpg"},
		// No in-batch link falls back to the catalog
		{Style: "CD456", Color: "Red", ImageLink: ""},
		// Neither source resolves to blank
		{Style: "EF789", Color: "Black", ImageLink: ""},
	}

	result := services.Aggregate(rows, lookup)
	require.Len(t, result.Records, 3)

	byStyle := map[string]string{}
	for _, rec := range result.Records {
		byStyle[rec.Style] = rec.ImageURL
	}
	assert.Equal(t, "http://cad/inline.jpg", byStyle["AB123"])
	assert.Equal(t, "http://catalog/cd456.jpg", byStyle["CD456"])
	assert.Empty(t, byStyle["EF789"])
}

func TestAggregate_LastNonBlankImageLinkWins(t *testing.T) {
	rows := []domain.RawInventoryRow{
		{Style: "AB123", Color: "Navy", ImageLink: "http://cad/first.jpg"},
		{Style: "AB123", Color: "Navy", ImageLink: ""},
		{Style: "AB123", Color: "Navy", ImageLink: "http://cad/last.jpg"},
	}

	result := services.Aggregate(rows, nil)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "http://cad/last.jpg", result.Records[0].ImageURL)
}

func TestAggregate_EmptyInput(t *testing.T) {
	result := services.Aggregate(nil, nil)
	assert.Equal(t, 0, result.RowsIn)
	assert.Equal(t, 0, result.Groups)
	assert.Empty(t, result.Records)
}
