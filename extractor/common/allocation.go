package common

import (
	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	balancedLow  = decimal.RequireFromString("99.5")
	balancedHigh = decimal.RequireFromString("100.5")
)

// ResolveAllocation converts category percentages into absolute amounts using
// the statement's ending value: amount = ending * percent / 100, rounded
// half-up to the cent.
//
// With no ending value the amounts cannot be computed; no entries are
// returned, only a warning — never zero-valued allocations. Percentages that
// sum outside [99.5, 100.5] still resolve, with an advisory "unbalanced"
// warning, because the source document is authoritative and may itself round.
func ResolveAllocation(ending decimal.NullDecimal, percents map[AllocationCategory]decimal.Decimal) ([]AllocationEntry, []string) {
	if len(percents) == 0 {
		return nil, nil
	}

	if !ending.Valid {
		return nil, []string{"allocation requires ending value"}
	}

	var warnings []string
	sum := decimal.Zero
	entries := make([]AllocationEntry, 0, len(percents))
	for _, category := range Categories {
		pct, ok := percents[category]
		if !ok {
			continue
		}
		sum = sum.Add(pct)
		// decimal.Round rounds half away from zero, which is half-up for
		// the non-negative magnitudes involved here.
		amount := ending.Decimal.Mul(pct).Div(hundred).Round(2)
		entries = append(entries, AllocationEntry{
			Category: category,
			Percent:  pct,
			Amount:   Present(amount),
		})
	}

	if sum.LessThan(balancedLow) || sum.GreaterThan(balancedHigh) {
		warnings = append(warnings, "unbalanced allocation: percentages sum to "+sum.String()+"%")
	}

	return entries, warnings
}
