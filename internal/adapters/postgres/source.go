package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devbush/social2csv/internal/domain"
)

const listAccountsQuery = `
SELECT ac.id, ac._platform, ac._source_id
FROM accounts ac
INNER JOIN sources sc ON ac._source_id = sc._id
WHERE ac._platform = $1`

// Source reads the tracked accounts from the relational store. It
// implements ports.AccountSource.
type Source struct {
	db *sql.DB
}

// NewSource creates an account source backed by the given pool.
func NewSource(db *sql.DB) *Source {
	return &Source{db: db}
}

// ListAccounts returns every account joined to its originating source and
// tagged with the given platform. No matches yields an empty slice, not
// an error.
func (s *Source) ListAccounts(ctx context.Context, platform domain.Platform) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, listAccountsQuery, string(platform))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Platform, &a.SourceID); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}
