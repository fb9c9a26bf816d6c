// Package forum implements the client for the forum posts API, the external
// data source of the nomination thread.
package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
	"github.com/filadelfiminer-alt/nominanti/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL      = "https://prod-api.lolz.live"
	defaultFetchTimeout = 30 * time.Second
)

// Page is one page of thread posts as returned by the source.
type Page struct {
	Posts []model.Post `json:"posts"`
	Links struct {
		Pages int `json:"pages"`
	} `json:"links"`
}

// Fetcher abstracts the data source for the ingestion driver.
type Fetcher interface {
	// FetchPage returns one page of the nomination thread, 1-based.
	FetchPage(ctx context.Context, page int) (*Page, error)
}

// Client fetches thread pages over HTTP with a bearer credential.
type Client struct {
	baseURL    string
	threadID   string
	apiKey     string
	httpClient *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests point this at httptest).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a forum client for one thread. The API key is required
// for every fetch; callers must check HasCredential before starting a run.
func NewClient(threadID, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		threadID:   threadID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether a bearer credential is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// FetchPage fetches one page of the nomination thread.
func (c *Client) FetchPage(ctx context.Context, page int) (*Page, error) {
	if !c.HasCredential() {
		return nil, ErrNoCredential
	}

	q := url.Values{}
	q.Set("thread_id", c.threadID)
	q.Set("page", strconv.Itoa(page))
	reqURL := c.baseURL + "/posts?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request for page %d: %w", page, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordPageFetchDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordPageFetchError()
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordPageFetchError()
		// Drain a little of the body so the error is diagnosable.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: page %d status %d: %s", ErrUnexpectedStatus, page, resp.StatusCode, snippet)
	}

	var out Page
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.RecordPageFetchError()
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}

	metrics.RecordPageFetched()
	return &out, nil
}
