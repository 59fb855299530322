// Package upstream fetches SVG cards from the github-readme-stats service.
package upstream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultStatsURL is the upstream stats card endpoint.
	DefaultStatsURL = "https://github-readme-stats.vercel.app/api"
	// DefaultTopLangsURL is the upstream top languages card endpoint.
	DefaultTopLangsURL = "https://github-readme-stats.vercel.app/api/top-langs/"

	maxIdleConnsPerHost = 20

	// maxBodySize bounds how much of an upstream card is read.
	maxBodySize = 2 << 20
)

// ErrBodyTooLarge is returned when an upstream card exceeds maxBodySize.
var ErrBodyTooLarge = errors.New("upstream body too large")

// Error reports a non-2xx upstream response.
type Error struct {
	URL        string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// Client performs GET requests against the upstream service.
type Client struct {
	httpClient *http.Client
	cache      *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithCache serves repeated fetches of the same URL from cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client whose requests time out after timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: maxIdleConnsPerHost,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildURL returns baseURL with params encoded as its query string.
func BuildURL(baseURL string, params url.Values) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid upstream URL %q: %w", baseURL, err)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// FetchSVG GETs baseURL with params and returns the body as text.
// A non-2xx status yields *Error.
func (c *Client) FetchSVG(ctx context.Context, baseURL string, params url.Values) (string, error) {
	target, err := BuildURL(baseURL, params)
	if err != nil {
		return "", err
	}

	if c.cache == nil {
		return c.fetch(ctx, target)
	}
	// The shared fetch outlives any single caller; httpClient.Timeout bounds it.
	shared := context.WithoutCancel(ctx)
	return c.cache.Do(ctx, target, func() (string, error) {
		return c.fetch(shared, target)
	})
}

func (c *Client) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("error creating upstream request: %w", err)
	}
	req.Header.Set("Accept", "image/svg+xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching upstream: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Upstream responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("error reading upstream body: %w", err)
	}
	if len(body) > maxBodySize {
		return "", ErrBodyTooLarge
	}

	return string(body), nil
}
