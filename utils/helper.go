package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceDecimal parses a cell value as a number. Marketplace exports are
// full of blanks, dashes and stray text in numeric columns; any value that
// does not parse is treated as zero rather than failing the whole run.
func CoerceDecimal(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceQuantity is CoerceDecimal with a default of one: a missing or
// unreadable quantity still means the order shipped at least one unit.
func CoerceQuantity(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.NewFromInt(1)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return d
}

// NormalizeSKU trims and case-folds a SKU so cost-sheet keys and order rows
// match regardless of how the seller typed them.
func NormalizeSKU(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func SplitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
