package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/util"
)

// ErrFetch wraps every failure to obtain time entries: transport, status or decoding.
var ErrFetch = errors.New("failed to fetch time entries")

const maxErrorBody = 4096

// Client fetches time entries from the configured endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for baseURL authenticated with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  "timet",
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEntries issues a single GET for the given month. It never retries.
func (c *Client) FetchEntries(ctx context.Context, year, month int) ([]model.TimeEntry, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url %q: %w", ErrFetch, c.baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported url scheme %q", ErrFetch, u.Scheme)
	}
	q := u.Query()
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrFetch, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(model.HeaderAPIKey, c.apiKey)
	req.Header.Set(model.HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	util.LogDebug("Fetching time entries",
		util.F("host", u.Host), util.F("year", year), util.F("month", month), util.F("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrFetch, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrFetch, err)
	}

	entries, err := decodeEntries(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	util.LogDebug("Fetched time entries",
		util.F("count", len(entries)), util.F("bytes", len(body)), util.F("request_id", requestID))
	return entries, nil
}
