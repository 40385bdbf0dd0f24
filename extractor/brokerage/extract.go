package brokerage

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/investco-dev/investco/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type config struct {
	detect        *regexp.Regexp
	accountNumber []string
	implicitZero  []string
}

func loadConfig() config {
	return config{
		detect:        regexp.MustCompile(viper.GetString("statement.BROKERAGE.detect")),
		accountNumber: viper.GetStringSlice("statement.BROKERAGE.account_number"),
		implicitZero:  viper.GetStringSlice("statement.BROKERAGE.implicit_zero"),
	}
}

func labels(field string) []string {
	return viper.GetStringSlice("statement.BROKERAGE.labels." + field)
}

func categoryLabels(category common.AllocationCategory) []string {
	return viper.GetStringSlice("statement.BROKERAGE.allocation." + string(category))
}

// Detect reports whether the document text looks like a brokerage statement.
func Detect(text string) bool {
	return loadConfig().detect.MatchString(text)
}

// Extract builds a brokerage StatementRecord from linearized document rows,
// including the asset allocation breakdown when the statement reports one.
func Extract(source string, rows []string) common.StatementRecord {
	cfg := loadConfig()
	text := strings.Join(rows, "\n")

	rec := common.StatementRecord{
		Type:      common.TypeBrokerage,
		Source:    strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)),
		Brokerage: &common.BrokerageDetails{},
	}

	rec.Account.AccountNumber = common.MatchText(text, cfg.accountNumber)
	rec.Account.AccountType = string(common.TypeBrokerage)

	rec.PeriodStart, rec.PeriodEnd = common.ParsePeriod(text)
	rec.StatementDate = rec.PeriodEnd

	rec.BeginningValue = common.ExtractField(&rec, rows, common.Field{Name: "beginning_value", Labels: labels("beginning_value")})
	rec.EndingValue = common.ExtractField(&rec, rows, common.Field{Name: "ending_value", Labels: labels("ending_value")})
	rec.Deposits = common.ExtractField(&rec, rows, common.Field{Name: "deposits", Labels: labels("deposits")})
	rec.Withdrawals = common.ExtractField(&rec, rows, common.Field{Name: "withdrawals", Labels: labels("withdrawals")})
	rec.Dividends = common.ExtractField(&rec, rows, common.Field{Name: "dividends", Labels: labels("dividends")})
	rec.Interest = common.ExtractField(&rec, rows, common.Field{Name: "interest", Labels: labels("interest")})
	rec.CapitalGains = common.ExtractField(&rec, rows, common.Field{Name: "capital_gains", Labels: labels("capital_gains")})
	rec.MarketChange = common.ExtractField(&rec, rows, common.Field{Name: "market_change", Labels: labels("market_change")})
	rec.OtherActivity = common.ExtractField(&rec, rows, common.Field{Name: "other_activity", Labels: labels("other_activity")})
	rec.Fees = common.NormalizeFee(
		common.ExtractField(&rec, rows, common.Field{Name: "fees", Labels: labels("fees")}))
	rec.Brokerage.TotalCostBasis = common.ExtractField(&rec, rows, common.Field{Name: "total_cost_basis", Labels: labels("total_cost_basis")})

	rec.ApplyImplicitZeros(cfg.implicitZero)

	rec.Allocation = extractAllocation(&rec, rows)

	return rec
}

// extractAllocation collects the category percentages present in the document
// and resolves them against the ending value.
func extractAllocation(rec *common.StatementRecord, rows []string) []common.AllocationEntry {
	percents := make(map[common.AllocationCategory]decimal.Decimal)
	for _, category := range common.Categories {
		f := common.Field{Name: string(category), Labels: categoryLabels(category), Percent: true}
		v := common.ExtractField(rec, rows, f)
		if v.Valid {
			percents[category] = v.Decimal
		}
	}

	entries, warnings := common.ResolveAllocation(rec.EndingValue, percents)
	for _, w := range warnings {
		rec.Warn("%s", w)
	}
	return entries
}
