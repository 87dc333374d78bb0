package prometheus

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/leanscrap"
)

var _ leanscrap.ArticleScraper = (*Scraper)(nil)

// Scraper counts scrape outcomes and failure reasons and records latency.
type Scraper struct {
	next    leanscrap.ArticleScraper
	metrics *Metrics
}

// NewScraper wraps next with metrics.
func NewScraper(next leanscrap.ArticleScraper, metrics *Metrics) *Scraper {
	return &Scraper{next: next, metrics: metrics}
}

func (s *Scraper) ScrapArticle(ctx context.Context, u *url.URL) (article leanscrap.Article, err error) {
	defer func(begin time.Time) {
		s.metrics.scrapeDuration.Observe(time.Since(begin).Seconds())

		var ae *leanscrap.ArticleError
		switch {
		case err == nil:
			s.metrics.scrapesTotal.WithLabelValues(OutcomeOK).Inc()
		case errors.As(err, &ae):
			s.metrics.scrapesTotal.WithLabelValues(OutcomeArticleError).Inc()
			for _, r := range ae.Reasons {
				s.metrics.reasonsTotal.WithLabelValues(string(r)).Inc()
			}
		default:
			s.metrics.scrapesTotal.WithLabelValues(OutcomeError).Inc()
		}
	}(time.Now())
	return s.next.ScrapArticle(ctx, u)
}
