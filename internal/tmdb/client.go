package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrFetchFailed marks transport and HTTP status failures.
var ErrFetchFailed = errors.New("failed to fetch movies")

// Catalog defines the movie lookups the search page needs.
// This interface is implemented by *Client and can be used for testing.
type Catalog interface {
	SearchMovies(ctx context.Context, query string) (Page, error)
	DiscoverMovies(ctx context.Context) (Page, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the TMDB v3 HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	language  string
	userAgent string
}

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	DefaultLanguage  = "en-US"
	defaultUserAgent = "reel/0.1"
	requestTimeout   = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithLanguage overrides the discover language parameter.
func WithLanguage(tag string) Option {
	return func(c *Client) {
		if tag = strings.TrimSpace(tag); tag != "" {
			c.language = tag
		}
	}
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client against baseURL authenticating with a bearer token.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     strings.TrimSpace(token),
		language:  DefaultLanguage,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchMovies queries /search/movie for titles matching query.
func (c *Client) SearchMovies(ctx context.Context, query string) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("query", query)
	return c.get(ctx, "search/movie", values)
}

// DiscoverMovies lists popular movies via /discover/movie.
func (c *Client) DiscoverMovies(ctx context.Context) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("include_adult", "false")
	values.Set("include_video", "false")
	values.Set("language", c.language)
	values.Set("page", "1")
	values.Set("sort_by", "popularity.desc")
	return c.get(ctx, "discover/movie", values)
}

func (c *Client) get(ctx context.Context, path string, values url.Values) (Page, error) {
	reqURL := c.resolve(path, values)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: execute request: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, fmt.Errorf("%w: %s returned status %d", ErrFetchFailed, path, resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return Page{}, fmt.Errorf("decode response: %w", err)
	}
	return page, nil
}

// resolve keeps the base path (e.g. /3) and appends the endpoint path.
func (c *Client) resolve(path string, values url.Values) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	// Spaces go out as %20; Encode already escapes a literal plus as %2B.
	u.RawQuery = strings.ReplaceAll(values.Encode(), "+", "%20")
	return &u
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
