package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/investco-dev/investco/extractor/common"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// details is the JSONB shape for the variant-specific payload.
type details struct {
	Annuity    *common.AnnuityDetails    `json:"annuity,omitempty"`
	Retirement *common.RetirementDetails `json:"retirement,omitempty"`
	Brokerage  *common.BrokerageDetails  `json:"brokerage,omitempty"`
}

// numArg converts an optional decimal into a NUMERIC parameter. Absence maps
// to NULL, never to zero.
func numArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func numFrom(s *string) decimal.NullDecimal {
	if s == nil {
		return common.Absent()
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return common.Absent()
	}
	return common.Present(d)
}

// StatementExists checks if a statement already exists using the natural key
// (account_id, period_end)
func (db *DB) StatementExists(ctx context.Context, accountID string, periodEnd time.Time) (bool, string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM statements
		WHERE account_id = $1 AND period_end = $2
	`, accountID, periodEnd).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to check statement: %w", err)
	}

	return true, id, nil
}

// CreateStatement inserts a new statement record and its allocation rows
func (db *DB) CreateStatement(ctx context.Context, accountID string, rec common.StatementRecord) (string, error) {
	payload, err := json.Marshal(details{
		Annuity:    rec.Annuity,
		Retirement: rec.Retirement,
		Brokerage:  rec.Brokerage,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode statement details: %w", err)
	}

	var id string
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO statements (
			account_id, source, statement_type,
			statement_date, period_start, period_end,
			beginning_value, ending_value,
			deposits, withdrawals, dividends, interest, capital_gains,
			market_change, other_activity, fees,
			details, warnings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`,
		accountID, rec.Source, string(rec.Type),
		rec.StatementDate, rec.PeriodStart, rec.PeriodEnd,
		numArg(rec.BeginningValue), numArg(rec.EndingValue),
		numArg(rec.Deposits), numArg(rec.Withdrawals), numArg(rec.Dividends),
		numArg(rec.Interest), numArg(rec.CapitalGains),
		numArg(rec.MarketChange), numArg(rec.OtherActivity), numArg(rec.Fees),
		payload, rec.Warnings,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create statement: %w", err)
	}

	for _, entry := range rec.Allocation {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO allocations (statement_id, category, percent, amount)
			VALUES ($1, $2, $3, $4)
		`, id, string(entry.Category), entry.Percent.String(), numArg(entry.Amount))
		if err != nil {
			return "", fmt.Errorf("failed to create allocation: %w", err)
		}
	}

	return id, nil
}

// DeleteStatement removes a statement and its allocations (cascade)
func (db *DB) DeleteStatement(ctx context.Context, statementID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM statements WHERE id = $1`, statementID)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	return nil
}

// ListStatements returns all of an account's statement records ordered by
// period end, the shape the chain builder consumes.
func (db *DB) ListStatements(ctx context.Context, accountID string) ([]*common.StatementRecord, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, source, statement_type,
		       statement_date, period_start, period_end,
		       beginning_value::text, ending_value::text,
		       deposits::text, withdrawals::text, dividends::text,
		       interest::text, capital_gains::text,
		       market_change::text, other_activity::text, fees::text,
		       details, warnings
		FROM statements
		WHERE account_id = $1
		ORDER BY period_end ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	var records []*common.StatementRecord
	var ids []string

	for rows.Next() {
		var id, source, stmtType string
		var stmtDate, periodStart, periodEnd *time.Time
		var bv, ev, dep, wd, div, intr, cg, mc, oa, f *string
		var payload []byte
		var warnings []string
		if err := rows.Scan(&id, &source, &stmtType,
			&stmtDate, &periodStart, &periodEnd,
			&bv, &ev, &dep, &wd, &div, &intr, &cg, &mc, &oa, &f,
			&payload, &warnings); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}

		rec := &common.StatementRecord{
			Type:           common.StatementType(stmtType),
			Source:         source,
			StatementDate:  stmtDate,
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
			BeginningValue: numFrom(bv),
			EndingValue:    numFrom(ev),
			Deposits:       numFrom(dep),
			Withdrawals:    numFrom(wd),
			Dividends:      numFrom(div),
			Interest:       numFrom(intr),
			CapitalGains:   numFrom(cg),
			MarketChange:   numFrom(mc),
			OtherActivity:  numFrom(oa),
			Fees:           numFrom(f),
			Warnings:       warnings,
		}

		var d details
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &d); err != nil {
				return nil, fmt.Errorf("failed to decode statement details: %w", err)
			}
		}
		rec.Annuity, rec.Retirement, rec.Brokerage = d.Annuity, d.Retirement, d.Brokerage

		records = append(records, rec)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statements: %w", err)
	}

	for i, id := range ids {
		allocation, err := db.listAllocations(ctx, id)
		if err != nil {
			return nil, err
		}
		records[i].Allocation = allocation
	}

	return records, nil
}

func (db *DB) listAllocations(ctx context.Context, statementID string) ([]common.AllocationEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT category, percent::text, amount::text
		FROM allocations
		WHERE statement_id = $1
		ORDER BY category
	`, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var entries []common.AllocationEntry
	for rows.Next() {
		var category, pct string
		var amount *string
		if err := rows.Scan(&category, &pct, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		percent, err := decimal.NewFromString(pct)
		if err != nil {
			return nil, fmt.Errorf("failed to parse allocation percent: %w", err)
		}
		entries = append(entries, common.AllocationEntry{
			Category: common.AllocationCategory(category),
			Percent:  percent,
			Amount:   numFrom(amount),
		})
	}
	return entries, rows.Err()
}
