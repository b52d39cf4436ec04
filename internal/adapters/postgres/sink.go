package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devbush/social2csv/internal/domain"
)

const (
	insertProfileQuery = `
INSERT INTO profiles (id, full_name, description, created_time, subscriber_count)
VALUES ($1, $2, $3, $4, $5)`

	insertContentQuery = `
INSERT INTO content (id, description, title, created_time, view_count, like_count, comment_count)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

// Sink appends normalized records to the relational store. It implements
// ports.RecordSink with the same append-only semantics as the CSV sink:
// prior rows are never touched.
type Sink struct {
	db *sql.DB
}

// NewSink creates a relational record sink backed by the given pool.
func NewSink(db *sql.DB) *Sink {
	return &Sink{db: db}
}

// WriteProfile appends one profile row. Nil input is a no-op.
func (s *Sink) WriteProfile(ctx context.Context, profile *domain.Profile) error {
	if profile == nil {
		return nil
	}

	_, err := s.db.ExecContext(ctx, insertProfileQuery,
		profile.AccountID,
		profile.DisplayName,
		profile.Description,
		profile.CreatedAt,
		profile.FollowerCount,
	)
	if err != nil {
		return fmt.Errorf("insert profile %s: %w", profile.AccountID, err)
	}
	return nil
}

// WriteContent appends one row per item inside a transaction, so a
// partially failed batch does not leave half an account's rows behind.
// Empty input is a no-op.
func (s *Sink) WriteContent(ctx context.Context, items []domain.ContentItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin content batch: %w", err)
	}

	for _, item := range items {
		var views, likes, comments sql.NullInt64
		if item.Stats != nil {
			views = sql.NullInt64{Int64: item.Stats.ViewCount, Valid: true}
			likes = sql.NullInt64{Int64: item.Stats.LikeCount, Valid: true}
			comments = sql.NullInt64{Int64: item.Stats.CommentCount, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertContentQuery,
			item.ID,
			item.Description,
			item.Title,
			item.PublishedAt,
			views,
			likes,
			comments,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert content %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit content batch: %w", err)
	}
	return nil
}
