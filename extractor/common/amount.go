package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Present wraps a value as a present NullDecimal.
func Present(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Absent is the AbsentValue state: the statement did not report the figure.
func Absent() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// AddN adds two optional values. Absence of either operand propagates: the
// result is absent, never a zero-substituted sum.
func AddN(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return Absent()
	}
	return Present(a.Decimal.Add(b.Decimal))
}

// SubN subtracts b from a with the same absence propagation as AddN.
func SubN(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return Absent()
	}
	return Present(a.Decimal.Sub(b.Decimal))
}

// MalformedAmountError reports a label whose numeric payload could not be
// parsed. It is local to one field: callers downgrade it to an absent value
// plus a warning instead of failing the document.
type MalformedAmountError struct {
	Label string
	Text  string
	Err   error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("malformed amount for %q: %q", e.Label, e.Text)
}

func (e *MalformedAmountError) Unwrap() error { return e.Err }

// ParseAmount converts a captured digit group like "254,888.45" into an exact
// decimal. Monetary figures are reconciled to the cent, so binary floats are
// never involved.
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	return decimal.NewFromString(cleaned)
}
