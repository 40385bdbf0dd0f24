package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- Accounts table
CREATE TABLE IF NOT EXISTS accounts (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    account_number VARCHAR(50) NOT NULL,
    account_name VARCHAR(255) DEFAULT '',
    account_type VARCHAR(20) DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(account_number)
);

-- Statements table with natural key (account_id, period_end). The unique
-- constraint is the store-side duplicate-period enforcement; the chain
-- builder enforces the same rule independently at assembly time.
CREATE TABLE IF NOT EXISTS statements (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    source VARCHAR(255) NOT NULL,
    statement_type VARCHAR(20) NOT NULL,
    statement_date DATE,
    period_start DATE,
    period_end DATE NOT NULL,
    beginning_value NUMERIC(14,2),
    ending_value NUMERIC(14,2),
    deposits NUMERIC(14,2),
    withdrawals NUMERIC(14,2),
    dividends NUMERIC(14,2),
    interest NUMERIC(14,2),
    capital_gains NUMERIC(14,2),
    market_change NUMERIC(14,2),
    other_activity NUMERIC(14,2),
    fees NUMERIC(14,2),
    details JSONB DEFAULT '{}',
    warnings TEXT[] DEFAULT '{}',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(account_id, period_end)
);

-- Allocation breakdown, at most one row per category per statement
CREATE TABLE IF NOT EXISTS allocations (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    statement_id UUID NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
    category VARCHAR(20) NOT NULL,
    percent NUMERIC(7,4) NOT NULL,
    amount NUMERIC(14,2),

    UNIQUE(statement_id, category)
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_statements_account_id ON statements(account_id);
CREATE INDEX IF NOT EXISTS idx_statements_period_end ON statements(period_end);
CREATE INDEX IF NOT EXISTS idx_allocations_statement_id ON allocations(statement_id);
`

// EnsureSchema creates the tables and indexes if they don't exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
