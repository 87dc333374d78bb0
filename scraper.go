package leanscrap

import (
	"context"
	"net/url"
)

// ArticleScraper turns a page URL into a validated Article.
type ArticleScraper interface {
	// ScrapArticle fetches u and builds its Article.
	// Returns *ArticleError when the page responds with a non-OK status or
	// when mandatory fields are missing. Transport errors from the underlying
	// DocumentSource are returned as they are.
	ScrapArticle(ctx context.Context, u *url.URL) (Article, error)
}
