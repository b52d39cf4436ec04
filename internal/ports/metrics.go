package ports

import (
	"context"
	"time"

	"github.com/devbush/social2csv/internal/domain"
)

// Window restricts a content listing to items published inside the bounds.
type Window struct {
	After  time.Time
	Before time.Time
}

// MetricsClient wraps the platform's read-only metrics API. Every call is
// stateless, idempotent and retried by the caller if at all; the client
// performs no internal retries.
//
// All three operations share the same outcome contract: a nil-value result
// with domain.ErrNotFound when the API reports zero results (confirmed
// absent), or a *domain.APIError when the call itself failed (state
// unknown). The two must never be conflated.
type MetricsClient interface {
	// FetchProfile fetches account-level info and statistics.
	FetchProfile(ctx context.Context, accountID string) (*domain.Profile, error)

	// ListContent lists the account's content items, filtered by window
	// when non-nil, and resolves per-item statistics up to the client's
	// fan-out limit. Only items whose statistics were attempted are
	// returned.
	ListContent(ctx context.Context, accountID string, window *Window) ([]domain.ContentItem, error)

	// FetchItemStats fetches statistics for a single content item.
	FetchItemStats(ctx context.Context, itemID string) (*domain.Stats, error)
}
