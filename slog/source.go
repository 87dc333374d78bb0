// Package slog decorates leanscrap services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/leanscrap"
)

// Ensure LoggingSource implements leanscrap.DocumentSource.
var _ leanscrap.DocumentSource = (*LoggingSource)(nil)

// LoggingSource wraps a DocumentSource with request logging.
type LoggingSource struct {
	next   leanscrap.DocumentSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next leanscrap.DocumentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch logs the URL, status and body size and delegates to the wrapped source.
func (s *LoggingSource) Fetch(ctx context.Context, url string) (resp *leanscrap.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status, size = resp.StatusCode, len(resp.Content)
		}
		s.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, url)
}

// Close delegates to the wrapped source.
func (s *LoggingSource) Close() error {
	return s.next.Close()
}
