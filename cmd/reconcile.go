package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/investco-dev/investco/extractor"
	"github.com/investco-dev/investco/extractor/common"
	"github.com/investco-dev/investco/reconcile"
	"github.com/spf13/cobra"
)

var reconcilePath string

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a directory of statements",
	Long: `Extracts every PDF statement in a directory, chains the statements of
each account by period, and reports continuity gaps and per-period
reconciliation results.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		entries, err := os.ReadDir(reconcilePath)
		if err != nil {
			log.Fatalf("error: could not read directory: %v", err)
		}

		byAccount := map[string][]*common.StatementRecord{}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
				continue
			}
			record, ok := extractor.ProcessFile(filepath.Join(reconcilePath, e.Name()), "")
			if !ok {
				continue
			}
			if record.Account.AccountNumber == "" {
				log.Printf("WARN %s: no account number extracted, skipping", e.Name())
				continue
			}
			rec := record
			byAccount[rec.Account.AccountNumber] = append(byAccount[rec.Account.AccountNumber], &rec)
		}

		accounts := make([]string, 0, len(byAccount))
		for number := range byAccount {
			accounts = append(accounts, number)
		}
		sort.Strings(accounts)

		for _, number := range accounts {
			chain, err := reconcile.Build(number, byAccount[number])
			if err != nil {
				log.Fatalf("error: %v", err)
			}
			printChain(chain)
		}
	},
}

func printChain(chain *reconcile.Chain) {
	fmt.Printf("\nAccount %s (%d statements)\n", chain.AccountNumber, len(chain.Links))

	for _, link := range chain.Links {
		rec := link.Record
		period := "unknown period"
		if rec.PeriodEnd != nil {
			period = rec.PeriodEnd.Format("2006-01-02")
		} else if rec.StatementDate != nil {
			period = rec.StatementDate.Format("2006-01-02")
		}

		result := reconcile.Classify(rec)
		switch result.Status {
		case reconcile.StatusReconciled:
			fmt.Printf("  %s  reconciled\n", period)
		case reconcile.StatusOffByAmount:
			fmt.Printf("  %s  off by %s (expected %s)\n", period,
				result.Discrepancy.Decimal.StringFixed(2), result.Expected.Decimal.StringFixed(2))
		case reconcile.StatusIncomplete:
			fmt.Printf("  %s  incomplete, missing fields prevent reconciliation\n", period)
		}

		if link.Gap.Valid && !link.Gap.Decimal.IsZero() {
			fmt.Printf("  %s  GAP: beginning differs from prior ending by %s\n",
				period, link.Gap.Decimal.StringFixed(2))
		}

		for _, w := range rec.Warnings {
			fmt.Printf("  %s  warning: %s\n", period, w)
		}
	}
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVarP(&reconcilePath, "folder", "f", ".", "Folder containing the statements to reconcile")
}
