package benchmarks

import (
	"fmt"
	"testing"

	"github.com/agestock/agestock-be/internal/core/domain"
	"github.com/agestock/agestock-be/internal/core/services"
)

func BenchmarkAggregate(b *testing.B) {
	shapes := []struct {
		name         string
		styles, rows int
	}{
		{"small_100x4", 100, 4},
		{"medium_1000x6", 1000, 6},
		{"large_5000x9", 5000, 9},
	}

	for _, shape := range shapes {
		b.Run(shape.name, func(b *testing.B) {
			rows := createRawRows(shape.styles, shape.rows)
			lookup := createCatalogLookup(shape.styles)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = services.Aggregate(rows, lookup)
			}
		})
	}
}

func BenchmarkAggregate_NoCatalog(b *testing.B) {
	rows := createRawRows(1000, 6)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = services.Aggregate(rows, nil)
	}
}

func BenchmarkParseAmount(b *testing.B) {
	inputs := []string{"52.50", "$1,234.56", " 10.00 ", "", "free", "1 250"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.ParseAmount(inputs[i%len(inputs)])
	}
}

func BenchmarkParseCount(b *testing.B) {
	inputs := []string{"42", "1,250", "$15", "", "12.9", "n/a"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.ParseCount(inputs[i%len(inputs)])
	}
}

func BenchmarkResolveSizes(b *testing.B) {
	sizes := []string{"4X", "XL", "S", "XS", "M", "L", "M", "OSFA", "1X", "2X", "3X", "S"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.ResolveSizes(sizes)
	}
}

func BenchmarkRawRowFromRecord(b *testing.B) {
	rec := map[string]string{
		"Style":                 "AB123",
		"Color":                 "Navy",
		"Commodity":             "Knit Top",
		"Size":                  "M",
		"Remaining_Stock":       "10",
		"Remaining_Asset_Value": "52.50",
		"Current_Stock":         "12",
		"Committed_Stock":       "2",
		"Inventory_Age":         "430",
		"Age_Bracket":           "1 year+",
		"Trsc_Date":             "2025-06-15",
		"PO_No":                 "PO-9921",
		"Unit_Cost":             "5.25",
		"CAD_Link":              "http://cad/ab123.jpg",
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.RawRowFromRecord(rec)
	}
}

// Memory allocation benchmarks

func BenchmarkMemoryAllocation(b *testing.B) {
	b.Run("RawInventoryRow", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = &domain.RawInventoryRow{
				Style:          fmt.Sprintf("ST%05d", i),
				Color:          "Navy",
				Size:           "M",
				RemainingStock: "10",
			}
		}
	})

	b.Run("GroupKeys", func(b *testing.B) {
		rows := createRawRows(100, 4)

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := range rows {
				_ = domain.KeyFor(rows[j])
			}
		}
	})
}
