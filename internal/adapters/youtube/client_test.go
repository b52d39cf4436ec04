package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func channelEnvelope(title string, subscribers string) map[string]any {
	return map[string]any{
		"pageInfo": map[string]any{"totalResults": 1},
		"items": []map[string]any{{
			"snippet": map[string]any{
				"title":       title,
				"description": "a channel",
				"publishedAt": "2020-05-01T12:00:00Z",
			},
			"statistics": map[string]any{"subscriberCount": subscribers},
		}},
	}
}

func searchEnvelope(videoIDs ...string) map[string]any {
	items := make([]map[string]any, 0, len(videoIDs))
	for _, id := range videoIDs {
		items = append(items, map[string]any{
			"id": map[string]any{"videoId": id},
			"snippet": map[string]any{
				"title":       "video " + id,
				"description": "desc " + id,
				"publishedAt": "2023-03-15T09:30:00Z",
			},
		})
	}
	return map[string]any{
		"pageInfo": map[string]any{"totalResults": len(videoIDs)},
		"items":    items,
	}
}

func statsEnvelope(views, likes, comments string) map[string]any {
	return map[string]any{
		"pageInfo": map[string]any{"totalResults": 1},
		"items": []map[string]any{{
			"statistics": map[string]any{
				"viewCount":    views,
				"likeCount":    likes,
				"commentCount": comments,
			},
		}},
	}
}

func emptyEnvelope() map[string]any {
	return map[string]any{
		"pageInfo": map[string]any{"totalResults": 0},
		"items":    []map[string]any{},
	}
}

func TestClient_FetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key param = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("id"); got != "UC123" {
			t.Errorf("id param = %q, want UC123", got)
		}
		writeJSON(t, w, channelEnvelope("Test Channel", "4200"))
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL}, testLogger())

	profile, err := client.FetchProfile(context.Background(), "UC123")
	if err != nil {
		t.Fatalf("FetchProfile() error = %v", err)
	}
	if profile.DisplayName != "Test Channel" {
		t.Errorf("DisplayName = %q, want Test Channel", profile.DisplayName)
	}
	if profile.FollowerCount != 4200 {
		t.Errorf("FollowerCount = %d, want 4200", profile.FollowerCount)
	}
	if profile.AccountID != "UC123" {
		t.Errorf("AccountID = %q, want UC123", profile.AccountID)
	}
	want := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	if !profile.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", profile.CreatedAt, want)
	}
}

func TestClient_FetchProfile_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, emptyEnvelope())
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL}, testLogger())

	profile, err := client.FetchProfile(context.Background(), "UCmissing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FetchProfile() error = %v, want ErrNotFound", err)
	}
	if profile != nil {
		t.Errorf("profile should be nil on not-found")
	}
}

func TestClient_FetchProfile_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL}, testLogger())

	_, err := client.FetchProfile(context.Background(), "UC123")
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchProfile() error = %T, want *domain.APIError", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", apiErr.Status)
	}
	if apiErr.Body == "" {
		t.Error("Body context should be captured")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Error("transport error must not compare equal to ErrNotFound")
	}
}

func TestClient_ListContent_WindowParams(t *testing.T) {
	var gotAfter, gotBefore string
	var hasAfter, hasBefore bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			q := r.URL.Query()
			gotAfter, hasAfter = q.Get("publishedAfter"), q.Has("publishedAfter")
			gotBefore, hasBefore = q.Get("publishedBefore"), q.Has("publishedBefore")
			writeJSON(t, w, searchEnvelope("vid1"))
		case "/videos":
			writeJSON(t, w, statsEnvelope("10", "2", "1"))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL}, testLogger())

	window := &ports.Window{
		After:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Before: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	if _, err := client.ListContent(context.Background(), "UC123", window); err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if gotAfter != "2023-01-01T00:00:00Z" {
		t.Errorf("publishedAfter = %q, want 2023-01-01T00:00:00Z", gotAfter)
	}
	if gotBefore != "2023-06-30T00:00:00Z" {
		t.Errorf("publishedBefore = %q, want 2023-06-30T00:00:00Z", gotBefore)
	}

	// Without a window no bounds must be sent.
	if _, err := client.ListContent(context.Background(), "UC123", nil); err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if hasAfter || hasBefore {
		t.Errorf("windowless listing sent bounds: after=%v before=%v", hasAfter, hasBefore)
	}
}

func TestClient_ListContent_FanOutLimit(t *testing.T) {
	var statsCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			writeJSON(t, w, searchEnvelope("vid1", "vid2"))
		case "/videos":
			atomic.AddInt32(&statsCalls, 1)
			writeJSON(t, w, statsEnvelope("100", "10", "5"))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL, MaxItems: 1}, testLogger())

	items, err := client.ListContent(context.Background(), "UC123", nil)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1 (fan-out limit)", len(items))
	}
	if n := atomic.LoadInt32(&statsCalls); n != 1 {
		t.Errorf("statistics calls = %d, want 1", n)
	}
	if items[0].ID != "vid1" {
		t.Errorf("item ID = %q, want vid1", items[0].ID)
	}
	if items[0].Stats == nil || items[0].Stats.ViewCount != 100 {
		t.Errorf("item stats = %+v, want view count 100", items[0].Stats)
	}
}

func TestClient_ListContent_RaisedLimit(t *testing.T) {
	var statsCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			writeJSON(t, w, searchEnvelope("vid1", "vid2", "vid3"))
		case "/videos":
			atomic.AddInt32(&statsCalls, 1)
			writeJSON(t, w, statsEnvelope("1", "1", "1"))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL, MaxItems: 3}, testLogger())

	items, err := client.ListContent(context.Background(), "UC123", nil)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(items))
	}
	if n := atomic.LoadInt32(&statsCalls); n != 3 {
		t.Errorf("statistics calls = %d, want 3", n)
	}
}

func TestClient_ListContent_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, emptyEnvelope())
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL}, testLogger())

	items, err := client.ListContent(context.Background(), "UCquiet", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ListContent() error = %v, want ErrNotFound", err)
	}
	if items != nil {
		t.Error("items should be nil when nothing is listed")
	}
}

func TestClient_ListContent_StatsFailureKeepsItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			writeJSON(t, w, searchEnvelope("vid1"))
		case "/videos":
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL}, testLogger())

	items, err := client.ListContent(context.Background(), "UC123", nil)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Stats != nil {
		t.Errorf("Stats = %+v, want nil after stats failure", items[0].Stats)
	}
}
