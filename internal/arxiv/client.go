// Package arxiv fetches abstract metadata from the arXiv export API.
package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the arXiv export API query endpoint.
	BaseURL = "https://export.arxiv.org/api/query"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RequestInterval is the minimum gap between requests. The arXiv API
	// terms ask for no more than one request every three seconds.
	RequestInterval = 3 * time.Second

	// DefaultPageSize is the number of entries requested per call.
	DefaultPageSize = 100
)

// Client is a rate-limited HTTP client for the arXiv export API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	contact    string // contact email sent in the User-Agent, per API etiquette
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithContact sets the contact email included in the User-Agent.
func WithContact(email string) ClientOption {
	return func(c *Client) {
		c.contact = email
	}
}

// NewClient creates a new arXiv export API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(RequestInterval), 1),
		baseURL:    BaseURL,
	}

	if contact := os.Getenv("WS_CONTACT_EMAIL"); contact != "" {
		c.contact = contact
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search fetches one page of results for the query, starting at the given
// offset. The query uses arXiv search syntax, e.g. `all:"computer vision"`.
func (c *Client) Search(ctx context.Context, query string, start, maxResults int) (*Feed, error) {
	if maxResults <= 0 {
		maxResults = DefaultPageSize
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "ascending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	ua := "weaksig/1.0"
	if c.contact != "" {
		ua += " (" + c.contact + ")"
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying arXiv API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("arXiv API returned %d: %s", resp.StatusCode, string(body))
	}

	feed, err := ParseFeed(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return feed, nil
}
