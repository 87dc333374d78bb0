package slog

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/leanscrap"
)

// Ensure LoggingScraper implements leanscrap.ArticleScraper.
var _ leanscrap.ArticleScraper = (*LoggingScraper)(nil)

// LoggingScraper wraps an ArticleScraper and logs every scrape. Article
// errors are logged at warn level with their reasons; any other failure is
// logged as an error.
type LoggingScraper struct {
	next   leanscrap.ArticleScraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next leanscrap.ArticleScraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// ScrapArticle delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) ScrapArticle(ctx context.Context, u *url.URL) (article leanscrap.Article, err error) {
	defer func(begin time.Time) {
		var target string
		if u != nil {
			target = u.String()
		}
		attrs := []any{"url", target, "duration", time.Since(begin)}

		var ae *leanscrap.ArticleError
		switch {
		case err == nil:
			s.logger.Info("scrape", append(attrs, "title", article.Title, "authors", len(article.Authors))...)
		case errors.As(err, &ae):
			s.logger.Warn("scrape", append(attrs, "reasons", ae.Reasons)...)
		default:
			s.logger.Error("scrape", append(attrs, "err", err)...)
		}
	}(time.Now())
	return s.next.ScrapArticle(ctx, u)
}
