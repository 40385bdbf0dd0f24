package annuity

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/investco-dev/investco/extractor/common"
	"github.com/spf13/viper"
)

type config struct {
	detect        *regexp.Regexp
	accountNumber []string
	implicitZero  []string
	providers     []providerConfig
}

// providerConfig carries the per-provider detection pattern and the flows that
// provider's statement format structurally never reports.
type providerConfig struct {
	name         string
	detect       *regexp.Regexp
	implicitZero []string
}

// Corebridge/VALIC is checked before TIAA because its indicators are the more
// specific; an unmatched document falls back to the Jackson format.
var providerOrder = []string{"corebridge", "tiaa", "jackson"}

func loadConfig() config {
	cfg := config{
		detect:        regexp.MustCompile(viper.GetString("statement.ANNUITY.detect")),
		accountNumber: viper.GetStringSlice("statement.ANNUITY.account_number"),
		implicitZero:  viper.GetStringSlice("statement.ANNUITY.implicit_zero"),
	}
	for _, name := range providerOrder {
		key := "statement.ANNUITY.providers." + name
		if !viper.IsSet(key + ".detect") {
			continue
		}
		cfg.providers = append(cfg.providers, providerConfig{
			name:         name,
			detect:       regexp.MustCompile(viper.GetString(key + ".detect")),
			implicitZero: viper.GetStringSlice(key + ".implicit_zero"),
		})
	}
	return cfg
}

func labels(field string) []string {
	return viper.GetStringSlice("statement.ANNUITY.labels." + field)
}

// Detect reports whether the document text looks like an annuity statement.
func Detect(text string) bool {
	return loadConfig().detect.MatchString(text)
}

// Extract builds an annuity StatementRecord from linearized document rows.
// Premiums become the record's deposits and the net investment change its
// market change, so reconciliation runs on the shared core fields alone.
func Extract(source string, rows []string) common.StatementRecord {
	cfg := loadConfig()
	text := strings.Join(rows, "\n")

	rec := common.StatementRecord{
		Type:    common.TypeAnnuity,
		Source:  strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)),
		Annuity: &common.AnnuityDetails{},
	}

	rec.Annuity.Provider = detectProvider(cfg, text)
	rec.Account.AccountNumber = common.MatchText(text, cfg.accountNumber)
	rec.Account.AccountType = string(common.TypeAnnuity)

	rec.PeriodStart, rec.PeriodEnd = common.ParsePeriod(text)
	// Statement date is the period end on every supported format.
	rec.StatementDate = rec.PeriodEnd

	rec.BeginningValue = common.ExtractField(&rec, rows, common.Field{Name: "beginning_value", Labels: labels("beginning_value")})
	rec.EndingValue = common.ExtractField(&rec, rows, common.Field{Name: "ending_value", Labels: labels("ending_value")})
	rec.Deposits = common.ExtractField(&rec, rows, common.Field{Name: "premiums", Labels: labels("premiums")})
	rec.Withdrawals = common.ExtractField(&rec, rows, common.Field{Name: "withdrawals", Labels: labels("withdrawals")})
	rec.MarketChange = common.ExtractField(&rec, rows, common.Field{Name: "net_change", Labels: labels("net_change")})
	rec.Annuity.TaxWithholding = common.NormalizeFee(
		common.ExtractField(&rec, rows, common.Field{Name: "tax_withholding", Labels: labels("tax_withholding")}))

	rec.Annuity.RemainingGuaranteedBalance = common.ExtractField(&rec, rows, common.Field{Name: "remaining_guaranteed_balance", Labels: labels("remaining_guaranteed_balance")})
	rec.Annuity.DeathBenefit = common.ExtractField(&rec, rows, common.Field{Name: "death_benefit", Labels: labels("death_benefit")})
	rec.Annuity.EarningsDeterminationBaseline = common.ExtractField(&rec, rows, common.Field{Name: "earnings_baseline", Labels: labels("earnings_baseline")})
	rec.Annuity.GWBBonusBaseline = common.ExtractField(&rec, rows, common.Field{Name: "gwb_bonus_base", Labels: labels("gwb_bonus_base")})

	rec.ApplyImplicitZeros(cfg.implicitZero)
	for _, p := range cfg.providers {
		if p.name == rec.Annuity.Provider {
			rec.ApplyImplicitZeros(p.implicitZero)
		}
	}

	// Tax withholding is a deduction against the account; fold it into the
	// shared activity field so the validator never reads the payload.
	if rec.Annuity.TaxWithholding.Valid {
		rec.OtherActivity = common.Present(rec.Annuity.TaxWithholding.Decimal.Neg())
	}

	return rec
}

func detectProvider(cfg config, text string) string {
	for _, p := range cfg.providers {
		if p.detect.MatchString(text) {
			return p.name
		}
	}
	return "jackson"
}
