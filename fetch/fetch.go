// Package fetch retrieves source documents over HTTP: listing pages as
// goquery documents, syndication feeds as parsed gofeed feeds, and AJAX
// endpoints as decoded JSON envelopes. Congressional sites block obviously
// synthetic clients, so requests carry a browser User-Agent.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ErrParse tags documents that were retrieved but could not be parsed,
// distinguishing them from transport failures.
var ErrParse = errors.New("unparseable document")

// DefaultTimeout bounds a single source fetch. Listing pages on .gov
// infrastructure are slow but rarely slower than this.
const DefaultTimeout = 30 * time.Second

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher is the document retrieval surface the batch layer depends on.
// Tests substitute a stub; production code uses Client.
type Fetcher interface {
	HTML(ctx context.Context, url string) (*goquery.Document, error)
	Feed(ctx context.Context, url string) (*gofeed.Feed, error)
	JSON(ctx context.Context, url string, v any) error
}

// Client is the HTTP-backed Fetcher.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client with the given per-request timeout. A zero or
// negative timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// get performs the request and rejects non-200 responses. The caller owns
// the response body on success.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	return resp, nil
}

// HTML fetches a listing page and parses it into a goquery document.
func (c *Client) HTML(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w: %w", ErrParse, err)
	}
	return doc, nil
}

// Feed fetches an RSS or Atom feed. The gofeed parser detects the flavor
// and normalizes both into a common structure.
func (c *Client) Feed(ctx context.Context, url string) (*gofeed.Feed, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w: %w", ErrParse, err)
	}
	return feed, nil
}

// JSON fetches an endpoint that returns a JSON body and decodes it into v.
func (c *Client) JSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w: %w", ErrParse, err)
	}
	return nil
}
