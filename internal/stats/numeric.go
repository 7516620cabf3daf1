// Package stats derives read-only statistics from the entity collections.
// Nothing here touches storage.
package stats

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseOrAbsent parses a price-like value. Blank or non-numeric input is
// reported as absent so callers can leave it out of averages and bounds.
func ParseOrAbsent(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseOrZero parses an expense amount. Anything that is not a number
// contributes zero, so sums always produce a value.
func ParseOrZero(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Mean returns the arithmetic mean, or zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values))))
}
