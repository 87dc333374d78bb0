package leanscrap

import "context"

// Response is the raw result of fetching a page.
type Response struct {
	// Content is the page markup.
	Content string

	// StatusCode is the HTTP status of the page's document response.
	StatusCode int
}

// DocumentSource retrieves raw page content from URLs.
type DocumentSource interface {
	// Fetch retrieves the page at url. A non-OK HTTP status is reported in
	// the Response, not as an error; errors are reserved for transport
	// failures. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the source.
	Close() error
}
