package postgres

import (
	"context"
	"fmt"

	"github.com/investco-dev/investco/extractor/common"
)

// GetOrCreateAccount finds an existing account by number or creates a new one
func (db *DB) GetOrCreateAccount(ctx context.Context, account common.Account) (string, error) {
	var id string

	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM accounts WHERE account_number = $1
	`, account.AccountNumber).Scan(&id)

	if err == nil {
		// Account exists. Refresh the type from the extractor but keep any
		// user-set name.
		_, err = db.Pool.Exec(ctx, `
			UPDATE accounts
			SET account_name = CASE WHEN $1::text != '' THEN $1 ELSE account_name END,
			    account_type = CASE WHEN $2::text != '' THEN $2 ELSE account_type END,
			    updated_at = NOW()
			WHERE id = $3
		`, account.AccountName, account.AccountType, id)
		if err != nil {
			return "", fmt.Errorf("failed to update account: %w", err)
		}
		return id, nil
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO accounts (account_number, account_name, account_type)
		VALUES ($1, $2, $3)
		RETURNING id
	`, account.AccountNumber, account.AccountName, account.AccountType).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	return id, nil
}
