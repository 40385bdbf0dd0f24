package retirement

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
}

func loadConfig() config {
	return config{
		detect:        regexp.MustCompile(viper.GetString("statement.RETIREMENT_401K.detect")),
		accountNumber: viper.GetStringSlice("statement.RETIREMENT_401K.account_number"),
		implicitZero:  viper.GetStringSlice("statement.RETIREMENT_401K.implicit_zero"),
	}
}

func labels(field string) []string {
	return viper.GetStringSlice("statement.RETIREMENT_401K.labels." + field)
}

// Detect reports whether the document text looks like a 401(k) statement.
func Detect(text string) bool {
	return loadConfig().detect.MatchString(text)
}

// Extract builds a 401(k) StatementRecord from linearized document rows.
// Employee and employer contributions sum into the record's deposits, the
// investment gain/loss becomes its market change, and loan payments fold into
// the shared activity field as a deduction.
func Extract(source string, rows []string) common.StatementRecord {
	cfg := loadConfig()
	text := strings.Join(rows, "\n")

	rec := common.StatementRecord{
		Type:       common.TypeRetirement,
		Source:     strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)),
		Retirement: &common.RetirementDetails{},
	}

	rec.Account.AccountNumber = common.MatchText(text, cfg.accountNumber)
	rec.Account.AccountType = string(common.TypeRetirement)

	rec.PeriodStart, rec.PeriodEnd = common.ParsePeriod(text)
	rec.StatementDate = rec.PeriodEnd

	rec.BeginningValue = common.ExtractField(&rec, rows, common.Field{Name: "beginning_value", Labels: labels("beginning_value")})
	rec.EndingValue = common.ExtractField(&rec, rows, common.Field{Name: "ending_value", Labels: labels("ending_value")})
	rec.Retirement.EmployeeContributions = common.ExtractField(&rec, rows, common.Field{Name: "employee_contributions", Labels: labels("employee_contributions")})
	rec.Retirement.EmployerContributions = common.ExtractField(&rec, rows, common.Field{Name: "employer_contributions", Labels: labels("employer_contributions")})
	rec.MarketChange = common.ExtractField(&rec, rows, common.Field{Name: "gain_loss", Labels: labels("gain_loss")})
	rec.Withdrawals = common.ExtractField(&rec, rows, common.Field{Name: "withdrawals", Labels: labels("withdrawals")})
	rec.Fees = common.NormalizeFee(
		common.ExtractField(&rec, rows, common.Field{Name: "fees", Labels: labels("fees")}))
	rec.Retirement.LoanPayments = common.NormalizeFee(
		common.ExtractField(&rec, rows, common.Field{Name: "loan_payments", Labels: labels("loan_payments")}))
	rec.Retirement.VestedBalance = common.ExtractField(&rec, rows, common.Field{Name: "vested_balance", Labels: labels("vested_balance")})

	rec.ApplyImplicitZeros(cfg.implicitZero)

	rec.Deposits = common.AddN(rec.Retirement.EmployeeContributions, rec.Retirement.EmployerContributions)

	if rec.Retirement.LoanPayments.Valid {
		rec.OtherActivity = common.Present(rec.Retirement.LoanPayments.Decimal.Neg())
	}

	return rec
}
