package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/investco-dev/investco/extractor"
	"github.com/investco-dev/investco/reconcile"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int
	Skipped   int
	Failed    int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Force         bool   // Force reprocessing of existing statements
	StatementType string // Override auto-detection
	Verbose       bool   // Enable verbose logging
}

// ImportFile processes a single PDF file and stores it in the database.
// Returns: processed count, skipped count, failed count, error messages
func (db *DB) ImportFile(ctx context.Context, filePath string, opts ImportOptions) (processed int, skipped int, failed int, errors []string) {
	fileName := filepath.Base(filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: failed to open file: %v", fileName, err)}
	}
	defer f.Close()

	record, ok := extractor.ProcessReader(f, filePath, opts.StatementType)
	if !ok {
		return 0, 0, 1, []string{fmt.Sprintf("%s: no statement extracted", fileName)}
	}

	// Validate extraction
	if record.Account.AccountNumber == "" {
		return 0, 0, 1, []string{fmt.Sprintf("%s: no account number extracted", fileName)}
	}
	periodEnd := record.PeriodEnd
	if periodEnd == nil {
		periodEnd = record.StatementDate
	}
	if periodEnd == nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: no period end extracted", fileName, record.Account.AccountNumber)}
	}

	// Get or create account
	accountID, err := db.GetOrCreateAccount(ctx, record.Account)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: account error: %v", fileName, record.Account.AccountNumber, err)}
	}

	// Check if statement exists (natural key: account_id + period_end)
	exists, existingID, err := db.StatementExists(ctx, accountID, *periodEnd)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: check error: %v", fileName, record.Account.AccountNumber, err)}
	}

	if exists && !opts.Force {
		if opts.Verbose {
			log.Printf("SKIP %s [%s] (already exists)", fileName, record.Account.AccountNumber)
		}
		return 0, 1, 0, nil
	}

	// If forcing, delete the existing statement first
	if exists && opts.Force {
		if err := db.DeleteStatement(ctx, existingID); err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: delete error: %v", fileName, record.Account.AccountNumber, err)}
		}
	}

	if record.PeriodEnd == nil {
		record.PeriodEnd = periodEnd
	}
	if _, err := db.CreateStatement(ctx, accountID, record); err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: statement error: %v", fileName, record.Account.AccountNumber, err)}
	}

	if opts.Verbose {
		log.Printf("OK   %s [%s] %s", fileName, record.Account.AccountNumber, periodEnd.Format("2006-01-02"))
	}
	return 1, 0, 0, nil
}

// ImportDirectory processes all PDF files in a directory
func (db *DB) ImportDirectory(ctx context.Context, dirPath string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var dataFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			dataFiles = append(dataFiles, filepath.Join(dirPath, e.Name()))
		}
	}

	log.Printf("Scanning: %s", dirPath)
	log.Printf("Found %d PDF files\n", len(dataFiles))

	for _, filePath := range dataFiles {
		processed, skipped, failed, errors := db.ImportFile(ctx, filePath, opts)

		result.Processed += processed
		result.Skipped += skipped
		result.Failed += failed
		result.Errors = append(result.Errors, errors...)

		if opts.Verbose && failed > 0 {
			for _, errMsg := range errors {
				log.Printf("FAIL %s", errMsg)
			}
		}
	}

	return result, nil
}

// Import handles both file and directory imports
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return db.ImportDirectory(ctx, path, opts)
	}

	result := &ImportResult{}
	processed, skipped, failed, errors := db.ImportFile(ctx, path, opts)

	result.Processed = processed
	result.Skipped = skipped
	result.Failed = failed
	result.Errors = errors

	return result, nil
}

// VerifyChains rebuilds the statement chain for every account and logs gaps
// and reconciliation status. Run after an import to surface continuity
// problems across the newly stored periods.
func (db *DB) VerifyChains(ctx context.Context) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, account_number FROM accounts ORDER BY account_number`)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	type account struct{ id, number string }
	var accounts []account
	for rows.Next() {
		var a account
		if err := rows.Scan(&a.id, &a.number); err != nil {
			return fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read accounts: %w", err)
	}

	for _, a := range accounts {
		records, err := db.ListStatements(ctx, a.id)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}

		chain, err := reconcile.Build(a.number, records)
		if err != nil {
			return fmt.Errorf("failed to build chain for %s: %w", a.number, err)
		}

		for _, link := range chain.Links {
			end := link.Record.PeriodEnd
			if end == nil {
				end = link.Record.StatementDate
			}
			label := a.number
			if end != nil {
				label = fmt.Sprintf("%s %s", a.number, end.Format("2006-01-02"))
			}

			if link.Gap.Valid && !link.Gap.Decimal.IsZero() {
				log.Printf("GAP  %s: beginning differs from prior ending by %s", label, link.Gap.Decimal.StringFixed(2))
			}

			result := reconcile.Classify(link.Record)
			switch result.Status {
			case reconcile.StatusOffByAmount:
				log.Printf("OFF  %s: discrepancy %s", label, result.Discrepancy.Decimal.StringFixed(2))
			case reconcile.StatusIncomplete:
				log.Printf("INC  %s: missing fields, cannot reconcile", label)
			}
		}
	}

	return nil
}
