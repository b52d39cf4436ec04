package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/devbush/social2csv/internal/domain"
)

// Header schemas are fixed and versioned: every written row conforms
// exactly to its header's field order and names.
var (
	ProfileHeader = []string{"Id", "full_name", "description", "created_time", "subscriber_count"}
	ContentHeader = []string{"Id", "description", "title", "created_time", "view_count", "like_count", "comment_count"}
)

// Sink appends normalized records to flat CSV files. It implements
// ports.RecordSink. Files are created with a header row on first write;
// subsequent writes append data rows only and never touch prior content.
type Sink struct {
	profilePath string
	contentPath string
}

// NewSink creates a CSV sink writing profiles and content to the given
// paths.
func NewSink(profilePath, contentPath string) *Sink {
	return &Sink{
		profilePath: profilePath,
		contentPath: contentPath,
	}
}

// WriteProfile appends one profile row. Nil input is a no-op and creates
// no file.
func (s *Sink) WriteProfile(_ context.Context, profile *domain.Profile) error {
	if profile == nil {
		return nil
	}

	row := []string{
		profile.AccountID,
		profile.DisplayName,
		profile.Description,
		formatTime(profile.CreatedAt),
		strconv.FormatInt(profile.FollowerCount, 10),
	}
	return appendRows(s.profilePath, ProfileHeader, [][]string{row})
}

// WriteContent appends one row per item. Empty input is a no-op and
// creates no file. Items without statistics get empty count cells.
func (s *Sink) WriteContent(_ context.Context, items []domain.ContentItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		var views, likes, comments string
		if item.Stats != nil {
			views = strconv.FormatInt(item.Stats.ViewCount, 10)
			likes = strconv.FormatInt(item.Stats.LikeCount, 10)
			comments = strconv.FormatInt(item.Stats.CommentCount, 10)
		}
		rows = append(rows, []string{
			item.ID,
			item.Description,
			item.Title,
			formatTime(item.PublishedAt),
			views,
			likes,
			comments,
		})
	}
	return appendRows(s.contentPath, ContentHeader, rows)
}

// appendRows opens the file in append mode, emitting the header first
// only when the file is new or empty.
func appendRows(path string, header []string, rows [][]string) error {
	info, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, os.ErrNotExist) || (statErr == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open sink %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("write header %s: %w", path, err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	return f.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
