package reconcile

import (
	"github.com/investco-dev/investco/extractor/common"
	"github.com/shopspring/decimal"
)

// Status classifies one record's reconciliation outcome.
type Status string

const (
	StatusReconciled  Status = "reconciled"
	StatusOffByAmount Status = "off_by_amount"
	StatusIncomplete  Status = "incomplete"
)

// Result is the reconciliation classification of a single record. Discrepancy
// is the signed difference between the reported and the expected ending value,
// present only when the record is off by an amount.
type Result struct {
	Status      Status              `json:"status"`
	Expected    decimal.NullDecimal `json:"expected_ending_value"`
	Discrepancy decimal.NullDecimal `json:"discrepancy"`
}

// Tolerance absorbs cent-level rounding inside the source document.
var tolerance = decimal.RequireFromString("0.01")

// Classify checks whether a statement's reported ending value is explainable
// by its own reported components:
//
//	expected ending = beginning + net deposits + total income
//	                + market change + other activity - fees
//
// Classification depends only on the record's own fields; chain gaps are a
// separate signal. Any absent operand yields Incomplete — never an implicit
// zero, and never a panic.
func Classify(r *common.StatementRecord) Result {
	netDeposits := r.NetDeposits()
	totalIncome := r.TotalIncome()

	operands := []decimal.NullDecimal{
		r.BeginningValue, r.EndingValue,
		netDeposits, totalIncome,
		r.MarketChange, r.OtherActivity, r.Fees,
	}
	for _, op := range operands {
		if !op.Valid {
			return Result{Status: StatusIncomplete}
		}
	}

	expected := r.BeginningValue.Decimal.
		Add(netDeposits.Decimal).
		Add(totalIncome.Decimal).
		Add(r.MarketChange.Decimal).
		Add(r.OtherActivity.Decimal).
		Sub(r.Fees.Decimal)

	discrepancy := r.EndingValue.Decimal.Sub(expected)

	if discrepancy.Abs().LessThanOrEqual(tolerance) {
		return Result{Status: StatusReconciled, Expected: common.Present(expected)}
	}

	return Result{
		Status:      StatusOffByAmount,
		Expected:    common.Present(expected),
		Discrepancy: common.Present(discrepancy),
	}
}
