// Package rod provides a DocumentSource that renders pages in headless
// Chrome, for article pages that build their markup with JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/leanscrap"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

var _ leanscrap.DocumentSource = (*Source)(nil)

// Source retrieves rendered HTML using Chrome browser automation.
// Source is safe for concurrent use by multiple goroutines.
type Source struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Source.
type Option func(*sourceConfig)

type sourceConfig struct {
	timeout  time.Duration
	managers []ManagerOption
}

// WithFetchTimeout sets the timeout for a single page render.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *sourceConfig) {
		c.timeout = d
	}
}

// WithBrowserOptions passes options through to the BrowserManager.
func WithBrowserOptions(opts ...ManagerOption) Option {
	return func(c *sourceConfig) {
		c.managers = append(c.managers, opts...)
	}
}

// NewSource launches a headless browser and returns a Source backed by it.
// Close must be called when the Source is no longer needed.
func NewSource(opts ...Option) (*Source, error) {
	cfg := sourceConfig{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(cfg.managers...)
	if err != nil {
		return nil, err
	}
	return &Source{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates to url and returns the rendered HTML together with the
// status code of the main document response. Redirects are followed by the
// browser, so the status is that of the final document. A navigation that
// produces no document response (about: pages, cache hits) is an error.
func (s *Source) Fetch(ctx context.Context, url string) (*leanscrap.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser := s.manager.Browser()
	if browser == nil {
		return nil, leanscrap.Errorf(leanscrap.EINVALID, "browser source is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = page.Close()
		s.manager.PageDone()
	}()
	page = page.Context(ctx)

	var status int
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	waitDocument()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if status == 0 {
		return nil, fmt.Errorf("no document response received for %s", url)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	return &leanscrap.Response{Content: html, StatusCode: status}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (s *Source) Close() error {
	return s.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (s *Source) LauncherPID() int {
	return s.manager.LauncherPID()
}
