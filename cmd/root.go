package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration. Label lists are synonym sets tried in
// order; the first label that matches a row wins. implicit_zero names the
// flows a statement format structurally never reports, which are recorded
// as zero rather than left absent.
const defaultConfigYAML = `
statement:
  ANNUITY:
    detect: '(?i)annuity|contract\s+value|guaranteed\s+withdrawal'
    account_number:
      - 'Contract\s+Number[:\s]+(\d+)'
      - 'Policy\s+Number[:\s]+(\d+)'
      - '([CU]\d{6}-\d)'
      - 'Account\s+Number[:\s]+(\d+)'
    implicit_zero: [dividends, interest, capital_gains, fees]
    providers:
      corebridge:
        detect: '(?i)Corebridge|VALIC'
        implicit_zero: [withdrawals, tax_withholding]
      tiaa:
        detect: '(?i)TIAA|CREF'
        implicit_zero: [withdrawals, tax_withholding]
      jackson:
        detect: '(?i)Jackson|Contract\s+Number'
        implicit_zero: []
    labels:
      beginning_value: [Beginning Value on, Beginning Value, Beginning balance]
      ending_value: [Ending Value on, Ending Value, Ending balance]
      premiums: [Total Premium, Other Credits, Employer contributions]
      withdrawals: [Total Withdrawals]
      net_change: [Net Change in Contract Value, Net change in value, Net Change, Gains/Loss]
      tax_withholding: [Total Tax Withheld, Total Tax Witheld]
      remaining_guaranteed_balance: [Remaining Guaranteed Withdrawal Balance]
      death_benefit: [Death Benefit Value]
      earnings_baseline: [Earnings Determination Baseline]
      gwb_bonus_base: [Guaranteed Withdrawal Balance Bonus Base]
  RETIREMENT_401K:
    detect: '(?i)401\(k\)|retirement\s+savings\s+plan|vested\s+balance'
    account_number:
      - 'Plan\s+Number[:\s]+(\d+)'
      - 'Account\s+Number[:\s#]+([\dX-]+)'
    implicit_zero: [dividends, interest, capital_gains, loan_payments]
    labels:
      beginning_value: [Beginning Balance, Beginning Value]
      ending_value: [Ending Balance, Ending Value]
      employee_contributions: [Employee Contributions, Your Contributions]
      employer_contributions: [Employer Contributions, Employer Match, Company Match]
      gain_loss: [Investment Gain/Loss, Gain/Loss, Change in Market Value]
      withdrawals: [Withdrawals, Distributions]
      fees: [Fees, Administrative Fees, Plan Fees]
      loan_payments: [Loan Payments]
      vested_balance: [Vested Balance, Total Vested Balance]
  BROKERAGE:
    detect: '(?i)brokerage|asset\s+allocation|investment\s+report'
    account_number:
      - 'Account\s+Number[:\s#]+([\dA-Z-]+)'
    implicit_zero: [other_activity]
    labels:
      beginning_value: [Beginning Account Value, Beginning Value]
      ending_value: [Ending Account Value, Ending Value]
      deposits: [Deposits, Additions]
      withdrawals: [Withdrawals, Subtractions]
      dividends: [Dividends]
      interest: [Interest Income, Interest]
      capital_gains: [Capital Gain Distributions, Capital Gains]
      market_change: [Change in Investment Value, Market Change]
      other_activity: [Other Activity]
      fees: [Fees and Charges, Account Fees, Fees]
      total_cost_basis: [Total Cost Basis]
    allocation:
      money_market: [Money Market, Cash and Money Market]
      equities: [Equities, Stocks]
      fixed_income: [Fixed Income, Bonds]`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "investco [filename]",
		Short: "Extract and reconcile investment account statements",
		Long:  `investco extracts structured data out of annuity, 401(k) and brokerage account statements and reconciles each period's reported values`,
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				handler(extractCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.investco.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory and home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".investco")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
