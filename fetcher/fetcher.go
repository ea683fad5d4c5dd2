// Package fetcher retrieves the HTML of the page under audit.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// Timeout bounds the whole GET, including redirects and body read.
	Timeout = 10 * time.Second
	// UserAgent identifies the auditor to the target site.
	UserAgent = "WebCheck Bot/1.0"
	// MaxBodySize is the largest document the fetcher accepts.
	MaxBodySize = int64(10 * 1024 * 1024)
)

var (
	// ErrInvalidURL reports input that is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrFetchFailed covers every transport, timeout and status failure.
	ErrFetchFailed = errors.New("fetch failed")
)

// Doer is the part of *http.Client the fetcher needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher issues single-attempt GET requests.
type Fetcher struct {
	client Doer
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithClient swaps the underlying HTTP client.
func WithClient(client Doer) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// New creates a Fetcher with the default 10 second client.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ParseURL accepts only absolute http and https URLs with a host.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// Fetch validates rawURL and returns the response body as text. Validation
// happens before any network activity.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if _, err := ParseURL(rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	if int64(len(body)) > MaxBodySize {
		return "", fmt.Errorf("%w: body exceeds %d bytes", ErrFetchFailed, MaxBodySize)
	}
	return string(body), nil
}
