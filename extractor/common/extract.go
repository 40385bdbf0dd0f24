package common

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ExtractField runs the field extractor and folds a malformed payload into an
// absent value plus a warning on the record. One damaged field never blocks
// the rest of the statement.
func ExtractField(rec *StatementRecord, rows []string, f Field) decimal.NullDecimal {
	m, err := MatchField(rows, f)
	if err != nil {
		var malformed *MalformedAmountError
		if errors.As(err, &malformed) {
			rec.Warn("%s", malformed.Error())
			return Absent()
		}
		rec.Warn("%s: %v", f.Name, err)
		return Absent()
	}
	if m == nil {
		return Absent()
	}
	return Present(m.Amount)
}

// NormalizeFee folds a fee to its non-negative magnitude. A parenthesized fee
// is a display convention for "this is a deduction", not a sign to retain.
func NormalizeFee(v decimal.NullDecimal) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return Present(v.Decimal.Abs())
}

// ApplyImplicitZeros sets an explicit zero for each named flow that is still
// absent. Only a variant normalizer may call this, and only for flows its
// statement format structurally never reports; a flow the format does report
// but the document failed to match stays absent.
func (r *StatementRecord) ApplyImplicitZeros(names []string) {
	for _, name := range names {
		field := r.flowByName(name)
		if field != nil && !field.Valid {
			*field = Present(decimal.Zero)
		}
	}
}

func (r *StatementRecord) flowByName(name string) *decimal.NullDecimal {
	switch name {
	case "deposits":
		return &r.Deposits
	case "withdrawals":
		return &r.Withdrawals
	case "dividends":
		return &r.Dividends
	case "interest":
		return &r.Interest
	case "capital_gains":
		return &r.CapitalGains
	case "market_change":
		return &r.MarketChange
	case "other_activity":
		return &r.OtherActivity
	case "fees":
		return &r.Fees
	case "tax_withholding":
		if r.Annuity != nil {
			return &r.Annuity.TaxWithholding
		}
	case "loan_payments":
		if r.Retirement != nil {
			return &r.Retirement.LoanPayments
		}
	}
	return nil
}
