// Package http provides the net/http adapters for leanscrap: a
// DocumentSource for static pages and the JSON API server.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/leanscrap"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies leanscrap to the sites it fetches.
const DefaultUserAgent = "leanscrap/1.0 (+https://github.com/fwojciec/leanscrap)"

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 10 << 20

// Ensure Source implements leanscrap.DocumentSource at compile time.
var _ leanscrap.DocumentSource = (*Source)(nil)

// Source retrieves page content using plain HTTP requests.
// Unlike rod.Source, this does not execute JavaScript.
type Source struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
// Ignored when WithClient is used.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Source) {
		s.userAgent = ua
	}
}

// WithClient uses c instead of a client built from the timeout.
func WithClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// NewSource creates a new HTTP-based Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s
}

// Fetch retrieves the page at url. Any HTTP status is returned in the
// Response; only transport failures produce an error. Bodies in legacy
// encodings are decoded to UTF-8 based on the Content-Type header and meta
// tags.
func (s *Source) Fetch(ctx context.Context, url string) (*leanscrap.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return &leanscrap.Response{StatusCode: resp.StatusCode}, nil
	}

	content, err := decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	return &leanscrap.Response{
		Content:    content,
		StatusCode: resp.StatusCode,
	}, nil
}

// decode converts a non-empty body to UTF-8. charset.NewReader fails with
// io.EOF on empty input, so callers handle that case first.
func decode(raw []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Close releases resources. For the HTTP source this is a no-op since
// http.Client doesn't require explicit cleanup.
func (s *Source) Close() error {
	return nil
}
