package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"nexus-swipe/config"

	"golang.org/x/time/rate"
)

const (
	nexusAPIURL    = "https://api.nexusmods.com/v1"
	defaultTimeout = 10 * time.Second

	// Nexus caps API usage per key; stay comfortably under it.
	requestsPerSecond = 2
	requestBurst      = 5

	maxModPages     = 4
	maxCommentPages = 3
)

// Client handles communication with the Nexus Mods API.
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client

	limiter *rate.Limiter
}

// ModSummary is one raw mod record as returned by the Nexus API. Any of the
// timestamp fields may be absent.
type ModSummary struct {
	ModID                int    `json:"mod_id"`
	Name                 string `json:"name"`
	Summary              string `json:"summary"`
	Description          string `json:"description,omitempty"`
	Version              string `json:"version"`
	Author               string `json:"author"`
	ModPageURL           string `json:"mod_page_url"`
	PictureURL           string `json:"picture_url,omitempty"`
	UploadedTimestamp    *int64 `json:"uploaded_timestamp,omitempty"`
	CreatedTimestamp     *int64 `json:"created_timestamp,omitempty"`
	UpdatedTimestamp     *int64 `json:"updated_timestamp,omitempty"`
	ContainsAdultContent bool   `json:"contains_adult_content"`
}

// ModComment is one free-text comment on a mod page.
type ModComment struct {
	CommentID int    `json:"comment_id"`
	Timestamp int64  `json:"timestamp"`
	Username  string `json:"username"`
	Comment   string `json:"comment"`
}

type commentsResponse struct {
	Comments []ModComment `json:"comments"`
}

// NewClient creates a new Nexus API client using the provided configuration.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.UserAgent == "" {
		// Should be handled by LoadConfig default, but double-check
		return nil, fmt.Errorf("USERAGENT is not configured")
	}
	if cfg.NexusAPIKey == "" {
		return nil, fmt.Errorf("NEXUS_API_KEY is not configured")
	}

	return &Client{
		BaseURL:   nexusAPIURL,
		APIKey:    cfg.NexusAPIKey,
		UserAgent: cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}, nil
}

func (c *Client) makeRequest(ctx context.Context, path string, queryParams url.Values, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Try to read body for more error info, but don't fail if it's unreadable
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode json response: %w", err)
		}
	}

	return nil
}

// FetchMods retrieves the latest added mods for a game domain, paginating
// until the desired count is reached or the API runs out of pages.
func (c *Client) FetchMods(ctx context.Context, gameDomain string, desired int) ([]ModSummary, error) {
	var mods []ModSummary
	for page := 1; len(mods) < desired && page <= maxModPages; page++ {
		params := url.Values{}
		params.Add("page", fmt.Sprintf("%d", page))
		params.Add("include_unapproved", "false")

		var pageMods []ModSummary
		err := c.makeRequest(ctx, fmt.Sprintf("/games/%s/mods/latest_added.json", gameDomain), params, &pageMods)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch mods for '%s' (page %d): %w", gameDomain, page, err)
		}
		if len(pageMods) == 0 {
			break
		}
		mods = append(mods, pageMods...)
	}
	return mods, nil
}

// FetchComments retrieves a single page of comments for a mod.
func (c *Client) FetchComments(ctx context.Context, gameDomain string, modID, page int) ([]ModComment, error) {
	params := url.Values{}
	params.Add("page", fmt.Sprintf("%d", page))
	params.Add("include_reported", "true")

	var data commentsResponse
	err := c.makeRequest(ctx, fmt.Sprintf("/games/%s/mods/%d/comments.json", gameDomain, modID), params, &data)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for mod %d: %w", modID, err)
	}
	return data.Comments, nil
}

// FetchAllComments paginates through a mod's comment pages. A page error
// after partial results keeps what was fetched; an error on the first page
// returns an empty list so comment-based signals simply don't fire.
func (c *Client) FetchAllComments(ctx context.Context, gameDomain string, modID int) []ModComment {
	var comments []ModComment
	for page := 1; page <= maxCommentPages; page++ {
		pageComments, err := c.FetchComments(ctx, gameDomain, modID, page)
		if err != nil || len(pageComments) == 0 {
			break
		}
		comments = append(comments, pageComments...)
	}
	return comments
}
