// internal/core/domain/normalize.go
package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// sizeRank is the canonical ordering for known size tokens. Tokens outside
// the table sort after all known sizes, keeping their first-seen order.
var sizeRank = map[string]int{
	"XS": 0,
	"S":  1,
	"M":  2,
	"L":  3,
	"XL": 4,
	"1X": 5,
	"2X": 6,
	"3X": 7,
	"4X": 8,
}

var unknownSizeRank = len(sizeRank)

// cleanNumber strips the decoration the upstream export is known to emit
// around numbers: currency prefix, thousands separators and stray spaces.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strings.ReplaceAll(s, " ", "")
}

// ParseCount parses a unit count. Blank or unparsable input is zero, never
// an error; fractional input is truncated toward zero.
func ParseCount(s string) int64 {
	cleaned := cleanNumber(s)
	if cleaned == "" {
		return 0
	}
	if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// ParseAmount parses a monetary amount. Blank or unparsable input is zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := cleanNumber(s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAgeDays parses an inventory age in days. Blank or unparsable is zero.
func ParseAgeDays(s string) int {
	return int(ParseCount(s))
}

// ResolveSizes deduplicates a size-token multiset and orders it canonically:
// known sizes by rank, unknown tokens after them in first-seen order. The
// sort is stable over the insertion-ordered, deduplicated set.
func ResolveSizes(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	ordered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		ordered = append(ordered, t)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return sizeRankOf(ordered[i]) < sizeRankOf(ordered[j])
	})
	return ordered
}

func sizeRankOf(token string) int {
	if r, ok := sizeRank[token]; ok {
		return r
	}
	return unknownSizeRank
}
