// Package scryfall implements the card data service client. All
// requests are rate limited and retried with exponential backoff so a
// single recommendation run stays within the service's request budget.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtgkit/deckforge/internal/cards"
)

const (
	baseURL        = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // minimum delay between requests
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second

	// PageSize is the fixed number of cards the service returns per
	// search page. Over-fetching callers cap their requests at this.
	PageSize = 175
)

// Client is a card data service client with rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a new card data client.
func NewClient() *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "DeckForge/1.0",
	}
}

// NewClientWithDelay creates a client with a custom minimum delay
// between requests. Non-positive delays fall back to the default.
func NewClientWithDelay(delay time.Duration) *Client {
	c := NewClient()
	if delay > 0 {
		c.rateLimiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return c
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at an httptest server.
func NewClientWithBaseURL(base string) *Client {
	c := NewClient()
	c.baseURL = base
	return c
}

// Search performs a full-text card search. At most one page of results
// is returned; callers needing breadth issue narrower queries instead
// of paginating.
func (c *Client) Search(ctx context.Context, query string, opts cards.SearchOptions) ([]cards.Card, error) {
	params := url.Values{}
	params.Set("q", buildQuery(query, opts))
	if opts.Order != "" {
		params.Set("order", opts.Order)
	}
	if opts.Unique != "" {
		params.Set("unique", opts.Unique)
	}

	endpoint := fmt.Sprintf("%s/cards/search?%s", c.baseURL, params.Encode())

	var result searchResult
	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	out := make([]cards.Card, 0, len(result.Data))
	for i := range result.Data {
		out = append(out, result.Data[i].toCard())
		if opts.MaxResults > 0 && len(out) >= opts.MaxResults {
			break
		}
	}
	return out, nil
}

// GetByName retrieves one card by exact name. Returns a NotFoundError
// when the service has no card with that name.
func (c *Client) GetByName(ctx context.Context, name string) (*cards.Card, error) {
	params := url.Values{}
	params.Set("exact", name)
	endpoint := fmt.Sprintf("%s/cards/named?%s", c.baseURL, params.Encode())

	var raw rawCard
	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("get card %q: %w", name, err)
	}

	card := raw.toCard()
	return &card, nil
}

// buildQuery appends the format legality filter to the caller's query.
func buildQuery(query string, opts cards.SearchOptions) string {
	if opts.Format == "" {
		return query
	}
	return query + " format:" + opts.Format
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		done, err := c.handleResponse(resp, result)
		if done {
			return err
		}
		lastErr = err

		if attempt < maxRetries {
			time.Sleep(backoff)
			backoff = minDuration(backoff*2, maxBackoff)
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// handleResponse consumes one HTTP response. It returns done=false when
// the request should be retried (429), done=true otherwise.
func (c *Client) handleResponse(resp *http.Response, result interface{}) (bool, error) {
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, fmt.Errorf("read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return true, fmt.Errorf("parse JSON response: %w", err)
		}
		return true, nil

	case http.StatusTooManyRequests:
		return false, fmt.Errorf("rate limited (HTTP 429)")

	case http.StatusNotFound:
		return true, &NotFoundError{URL: resp.Request.URL.String()}

	default:
		body, _ := io.ReadAll(resp.Body)

		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return true, &apiErr
		}
		return true, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
