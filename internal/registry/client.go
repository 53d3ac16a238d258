// Package registry queries the crates.io search API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cratui/internal/domain"
	"cratui/internal/logging"
)

const (
	// DefaultBaseURL is the crates.io search endpoint
	DefaultBaseURL = "https://crates.io/api/v1/crates"
	// MaxLimit is the largest per_page value the registry accepts
	MaxLimit = 100
	// UserAgent identifies the client; crates.io rejects requests without one
	UserAgent = "cratui (https://github.com/LiamGallagher737/cratui)"

	defaultTimeout = 15 * time.Second
)

// StatusError is returned for non-200 responses so callers can inspect the code.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

// Client searches the registry. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different search endpoint
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new registry client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: UserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "registry")
	return c
}

type searchResponse struct {
	Crates []crateJSON `json:"crates"`
	Meta   struct {
		NextPage *string `json:"next_page"`
		PrevPage *string `json:"prev_page"`
		Total    int     `json:"total"`
	} `json:"meta"`
}

type crateJSON struct {
	ID               string  `json:"id"`
	Description      *string `json:"description"`
	Repository       *string `json:"repository"`
	Documentation    *string `json:"documentation"`
	Homepage         *string `json:"homepage"`
	Downloads        uint64  `json:"downloads"`
	RecentDownloads  *uint64 `json:"recent_downloads"`
	MaxVersion       string  `json:"max_version"`
	MaxStableVersion *string `json:"max_stable_version"`
}

func (c crateJSON) toDomain() domain.Crate {
	crate := domain.Crate{
		ID:               c.ID,
		Description:      deref(c.Description),
		Repository:       deref(c.Repository),
		Documentation:    deref(c.Documentation),
		Homepage:         deref(c.Homepage),
		Downloads:        c.Downloads,
		MaxVersion:       c.MaxVersion,
		MaxStableVersion: deref(c.MaxStableVersion),
	}
	if c.RecentDownloads != nil {
		crate.RecentDownloads = *c.RecentDownloads
	}
	return crate
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Search fetches the zero-based batch page of results for query, with limit
// items per batch. limit is clamped to 1..MaxLimit.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (domain.Batch, error) {
	limit = ClampLimit(limit)
	if page < 0 {
		page = 0
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page+1))
	params.Set("per_page", strconv.Itoa(limit))
	u := c.baseURL + "?" + params.Encode()

	c.logger.Debug("search", "query", query, "page", page, "limit", limit)

	var resp searchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return domain.Batch{}, err
	}

	items := make([]domain.Crate, 0, len(resp.Crates))
	for _, cj := range resp.Crates {
		items = append(items, cj.toDomain())
	}

	c.logger.Debug("search returned", "query", query, "page", page, "items", len(items), "total", resp.Meta.Total)

	return domain.Batch{
		Items:         items,
		MoreAvailable: resp.Meta.NextPage != nil,
		Total:         resp.Meta.Total,
	}, nil
}

// ClampLimit bounds a requested batch size to what the registry accepts
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, URL: u}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode registry response: %w", err)
	}
	return nil
}
