package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// maxBodyContext caps how much of an error response body is carried in an
// APIError.
const maxBodyContext = 512

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	// Timeout bounds every single API call so one hung request cannot
	// stall the whole run.
	Timeout time.Duration
	// MaxItems is the fan-out limit: the maximum number of listed items
	// per account for which statistics are fetched in one run.
	MaxItems int
}

// Client calls the YouTube Data API v3. It implements ports.MetricsClient.
// The API key is passed as a query parameter on every call; the client
// never retries internally.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxItems   int
	log        *logrus.Entry
}

// NewClient creates a metrics client for the YouTube Data API.
func NewClient(apiKey string, opts Options, log *logrus.Entry) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxItems := opts.MaxItems
	if maxItems < 1 {
		maxItems = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxItems:   maxItems,
		log:        log,
	}
}

// FetchProfile fetches channel snippet + statistics for an account.
// Returns domain.ErrNotFound when the API reports zero results.
func (c *Client) FetchProfile(ctx context.Context, accountID string) (*domain.Profile, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", accountID)

	var envelope channelListResponse
	if err := c.get(ctx, "channels", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.PageInfo.TotalResults == 0 || len(envelope.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	channel := envelope.Items[0]
	return &domain.Profile{
		AccountID:     accountID,
		DisplayName:   channel.Snippet.Title,
		Description:   channel.Snippet.Description,
		CreatedAt:     parseTimestamp(channel.Snippet.PublishedAt),
		FollowerCount: parseCount(channel.Statistics.SubscriberCount),
	}, nil
}

// ListContent lists an account's videos, optionally restricted to a
// published-time window, and resolves statistics for at most the fan-out
// limit of items. A per-item statistics failure keeps the item with nil
// Stats and does not abort the listing. Returns domain.ErrNotFound when
// the search reports zero results.
func (c *Client) ListContent(ctx context.Context, accountID string, window *ports.Window) ([]domain.ContentItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", accountID)
	if window != nil {
		params.Set("publishedAfter", window.After.Format(time.RFC3339))
		params.Set("publishedBefore", window.Before.Format(time.RFC3339))
	}

	var envelope searchListResponse
	if err := c.get(ctx, "search", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.PageInfo.TotalResults == 0 || len(envelope.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	limit := c.maxItems
	if limit > len(envelope.Items) {
		limit = len(envelope.Items)
	}

	items := make([]domain.ContentItem, 0, limit)
	for _, video := range envelope.Items[:limit] {
		stats, err := c.FetchItemStats(ctx, video.ID.VideoID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.log.WithField("video_id", video.ID.VideoID).Info("video statistics not found")
			} else {
				c.log.WithField("video_id", video.ID.VideoID).WithError(err).Error("failed to fetch video statistics")
			}
			stats = nil
		}
		items = append(items, domain.ContentItem{
			ID:          video.ID.VideoID,
			Title:       video.Snippet.Title,
			Description: video.Snippet.Description,
			PublishedAt: parseTimestamp(video.Snippet.PublishedAt),
			Stats:       stats,
		})
	}

	return items, nil
}

// FetchItemStats fetches view/like/comment counters for one video.
// Returns domain.ErrNotFound when the API reports zero results.
func (c *Client) FetchItemStats(ctx context.Context, itemID string) (*domain.Stats, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", itemID)

	var envelope videoListResponse
	if err := c.get(ctx, "videos", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.PageInfo.TotalResults == 0 || len(envelope.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	stats := envelope.Items[0].Statistics
	return &domain.Stats{
		ViewCount:    parseCount(stats.ViewCount),
		LikeCount:    parseCount(stats.LikeCount),
		CommentCount: parseCount(stats.CommentCount),
	}, nil
}

// get performs one API call and decodes the JSON envelope into out.
// Transport failures, non-2xx responses and undecodable bodies all come
// back as *domain.APIError.
func (c *Client) get(ctx context.Context, op string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	callURL := fmt.Sprintf("%s/%s?%s", c.baseURL, op, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, callURL, nil)
	if err != nil {
		return &domain.APIError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyContext))
		return &domain.APIError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseCount parses the API's decimal-string counters; missing or
// malformed values become zero.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// YouTube Data API response envelopes (internal)

type pageInfo struct {
	TotalResults int `json:"totalResults"`
}

type channelListResponse struct {
	PageInfo pageInfo `json:"pageInfo"`
	Items    []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type searchListResponse struct {
	PageInfo pageInfo `json:"pageInfo"`
	Items    []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

type videoListResponse struct {
	PageInfo pageInfo `json:"pageInfo"`
	Items    []struct {
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}
