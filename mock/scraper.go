package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/leanscrap"
)

var _ leanscrap.ArticleScraper = (*ArticleScraper)(nil)

// ArticleScraper is a mock implementation of leanscrap.ArticleScraper.
type ArticleScraper struct {
	ScrapArticleFn func(ctx context.Context, u *url.URL) (leanscrap.Article, error)
}

func (s *ArticleScraper) ScrapArticle(ctx context.Context, u *url.URL) (leanscrap.Article, error) {
	return s.ScrapArticleFn(ctx, u)
}
