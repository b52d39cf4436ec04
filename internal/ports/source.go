package ports

import (
	"context"

	"github.com/devbush/social2csv/internal/domain"
)

// AccountSource supplies the accounts to import for a platform.
type AccountSource interface {
	// ListAccounts returns every tracked account with a matching platform
	// tag. An empty slice is a valid result; an error is fatal for the
	// run, since no partial account list is usable.
	ListAccounts(ctx context.Context, platform domain.Platform) ([]domain.Account, error)
}
