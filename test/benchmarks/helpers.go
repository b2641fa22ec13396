// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"

	"github.com/agestock/agestock-be/internal/core/domain"
)

var benchSizes = []string{"XS", "S", "M", "L", "XL", "1X", "2X", "3X", "4X"}

var benchBrackets = []struct {
	days    string
	bracket string
}{
	{"45", "1-3 months"},
	{"120", "3-6 months"},
	{"250", "6-12 months"},
	{"430", "1 year+"},
}

// createRawRows generates a synthetic low-value export: numStyles styles,
// rowsPerStyle size rows each, mimicking the shape of a real warehouse dump.
func createRawRows(numStyles, rowsPerStyle int) []domain.RawInventoryRow {
	rows := make([]domain.RawInventoryRow, 0, numStyles*rowsPerStyle)

	for s := 0; s < numStyles; s++ {
		b := benchBrackets[s%len(benchBrackets)]
		style := fmt.Sprintf("ST%05d", s)

		for r := 0; r < rowsPerStyle; r++ {
			rows = append(rows, domain.RawInventoryRow{
				Style:               style,
				Color:               fmt.Sprintf("Color%d", s%7),
				Commodity:           "Knit Top",
				Size:                benchSizes[r%len(benchSizes)],
				RemainingStock:      fmt.Sprintf("%d", 5+r),
				RemainingAssetValue: fmt.Sprintf("$%d.50", 20+r),
				CurrentStock:        fmt.Sprintf("%d", 6+r),
				CommittedStock:      "1",
				UnitCost:            "5.25",
				InventoryAge:        b.days,
				AgeBracket:          b.bracket,
				LastStockInDate:     "2025-06-15",
				PurchaseOrderNo:     fmt.Sprintf("PO-%04d", s),
			})
		}
	}

	return rows
}

// createCatalogLookup builds an in-memory snapshot lookup covering half the
// styles, so benchmarks exercise both the hit and miss paths.
func createCatalogLookup(numStyles int) func(string) (string, bool) {
	snapshot := make(map[string]string, numStyles/2)
	for s := 0; s < numStyles; s += 2 {
		style := fmt.Sprintf("ST%05d", s)
		snapshot[style] = "http://catalog/" + style + ".jpg"
	}
	return func(style string) (string, bool) {
		url, ok := snapshot[style]
		return url, ok
	}
}
