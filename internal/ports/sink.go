package ports

import (
	"context"

	"github.com/devbush/social2csv/internal/domain"
)

// RecordSink appends normalized output records to a durable destination.
// Prior rows are never rewritten or deduplicated here; idempotency across
// runs is handled upstream.
type RecordSink interface {
	// WriteProfile appends one profile row. A nil profile is a no-op and
	// must not touch the sink.
	WriteProfile(ctx context.Context, profile *domain.Profile) error

	// WriteContent appends one row per item. An empty or nil slice is a
	// no-op and must not touch the sink.
	WriteContent(ctx context.Context, items []domain.ContentItem) error
}
