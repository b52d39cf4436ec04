package domain

import "time"

// Stats holds per-item engagement counters.
type Stats struct {
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// ContentItem is one published item (e.g. a video) belonging to an account.
// Stats is nil when the per-item statistics fetch failed or reported
// not-found; the item itself is still written with empty counters.
type ContentItem struct {
	ID          string
	Title       string
	Description string
	PublishedAt time.Time
	Stats       *Stats
}

// AccountResult aggregates one account's fetch outcomes. Either field may
// independently be nil when its branch failed or found nothing; both nil is
// a no-op for persistence, not an error.
type AccountResult struct {
	Profile *Profile
	Items   []ContentItem
}
