package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StatementType discriminates the closed set of statement variants.
type StatementType string

const (
	TypeAnnuity    StatementType = "annuity"
	TypeRetirement StatementType = "401k"
	TypeBrokerage  StatementType = "brokerage"
)

type Account struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	AccountType   string `json:"account_type"`
}

// AllocationCategory is one of the fixed asset categories a brokerage
// statement breaks its value into.
type AllocationCategory string

const (
	CategoryMoneyMarket AllocationCategory = "money_market"
	CategoryEquities    AllocationCategory = "equities"
	CategoryFixedIncome AllocationCategory = "fixed_income"
)

// Categories lists the allocation categories in display order.
var Categories = []AllocationCategory{CategoryMoneyMarket, CategoryEquities, CategoryFixedIncome}

type AllocationEntry struct {
	Category AllocationCategory  `json:"category"`
	Percent  decimal.Decimal     `json:"percent"`
	Amount   decimal.NullDecimal `json:"amount"`
}

// StatementRecord is one account's state at one period end. Monetary fields
// use decimal.NullDecimal: an invalid value means the statement did not report
// the figure, which is never the same as zero.
type StatementRecord struct {
	Type    StatementType `json:"type"`
	Source  string        `json:"source"`
	Account Account       `json:"account"`

	StatementDate *time.Time `json:"statement_date,omitempty"`
	PeriodStart   *time.Time `json:"period_start,omitempty"`
	PeriodEnd     *time.Time `json:"period_end,omitempty"`

	BeginningValue decimal.NullDecimal `json:"beginning_value"`
	EndingValue    decimal.NullDecimal `json:"ending_value"`

	Deposits      decimal.NullDecimal `json:"deposits"`
	Withdrawals   decimal.NullDecimal `json:"withdrawals"`
	Dividends     decimal.NullDecimal `json:"dividends"`
	Interest      decimal.NullDecimal `json:"interest"`
	CapitalGains  decimal.NullDecimal `json:"capital_gains"`
	MarketChange  decimal.NullDecimal `json:"market_change"`
	OtherActivity decimal.NullDecimal `json:"other_activity"`
	Fees          decimal.NullDecimal `json:"fees"`

	Allocation []AllocationEntry `json:"allocation,omitempty"`

	Annuity    *AnnuityDetails    `json:"annuity,omitempty"`
	Retirement *RetirementDetails `json:"retirement,omitempty"`
	Brokerage  *BrokerageDetails  `json:"brokerage,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// AnnuityDetails carries the figures only annuity statements report. The
// guaranteed benefit values feed the projection calculator downstream and take
// no part in reconciliation.
type AnnuityDetails struct {
	Provider                      string              `json:"provider,omitempty"`
	TaxWithholding                decimal.NullDecimal `json:"tax_withholding"`
	RemainingGuaranteedBalance    decimal.NullDecimal `json:"remaining_guaranteed_balance"`
	DeathBenefit                  decimal.NullDecimal `json:"death_benefit"`
	EarningsDeterminationBaseline decimal.NullDecimal `json:"earnings_determination_baseline"`
	GWBBonusBaseline              decimal.NullDecimal `json:"gwb_bonus_baseline"`
}

type RetirementDetails struct {
	EmployeeContributions decimal.NullDecimal `json:"employee_contributions"`
	EmployerContributions decimal.NullDecimal `json:"employer_contributions"`
	LoanPayments          decimal.NullDecimal `json:"loan_payments"`
	VestedBalance         decimal.NullDecimal `json:"vested_balance"`
}

type BrokerageDetails struct {
	TotalCostBasis decimal.NullDecimal `json:"total_cost_basis"`
}

// Warn attaches an extraction warning to the record.
func (r *StatementRecord) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// NetDeposits is deposits minus withdrawals, absent when either is absent.
func (r *StatementRecord) NetDeposits() decimal.NullDecimal {
	return SubN(r.Deposits, r.Withdrawals)
}

// TotalIncome is dividends + interest + capital gains, absent when any
// component is absent.
func (r *StatementRecord) TotalIncome() decimal.NullDecimal {
	return AddN(AddN(r.Dividends, r.Interest), r.CapitalGains)
}

// CalculatedChange is ending value minus beginning value, absent when either
// is absent.
func (r *StatementRecord) CalculatedChange() decimal.NullDecimal {
	return SubN(r.EndingValue, r.BeginningValue)
}
