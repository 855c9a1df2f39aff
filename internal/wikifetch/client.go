package wikifetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrFetch marks page download failures.
var ErrFetch = errors.New("wiki fetch failed")

// Fetcher is the contract the import pipeline needs from a page source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Client fetches wiki pages over HTTP.
type Client struct {
	httpClient     *http.Client
	userAgent      string
	maxContentSize int64
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxContentSize caps the number of body bytes read per page.
func WithMaxContentSize(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.maxContentSize = limit
		}
	}
}

// New creates a Client with the given request timeout and user agent.
func New(timeout time.Duration, userAgent string, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects (max 5)")
				}
				return nil
			},
		},
		userAgent:      strings.TrimSpace(userAgent),
		maxContentSize: 20 << 20,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Fetch downloads url and returns the body decoded as UTF-8. Invalid byte
// sequences are replaced rather than rejected.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrFetch, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: HTTP %d %s", ErrFetch, url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxContentSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %s: read body: %w", ErrFetch, url, err)
	}
	if int64(len(body)) > c.maxContentSize {
		return "", fmt.Errorf("%w: %s: content too large (exceeds %d bytes)", ErrFetch, url, c.maxContentSize)
	}

	return strings.ToValidUTF8(string(body), "�"), nil
}
