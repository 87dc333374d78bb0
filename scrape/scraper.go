// Package scrape implements the article scraping pipeline: fetch a page,
// parse it, extract candidate fields and build a validated Article.
package scrape

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fwojciec/leanscrap"
)

// Ensure Scraper implements leanscrap.ArticleScraper at compile time.
var _ leanscrap.ArticleScraper = (*Scraper)(nil)

// Scraper wires a DocumentSource, DocumentParser and FieldExtractor into
// leanscrap.Build. It holds no mutable state and is safe for concurrent use
// when its collaborators are.
type Scraper struct {
	Source    leanscrap.DocumentSource
	Parser    leanscrap.DocumentParser
	Extractor leanscrap.FieldExtractor
}

// ScrapArticle fetches u and returns its Article.
//
// A response status above 200 fails with an ArticleError holding only
// URLBroken, before the page is parsed. Errors from the source or parser
// are returned unchanged.
func (s *Scraper) ScrapArticle(ctx context.Context, u *url.URL) (leanscrap.Article, error) {
	if u == nil {
		return leanscrap.Article{}, leanscrap.Errorf(leanscrap.EINVALID, "article URL required")
	}

	resp, err := s.Source.Fetch(ctx, u.String())
	if err != nil {
		return leanscrap.Article{}, err
	}
	if resp == nil {
		return leanscrap.Article{}, leanscrap.Errorf(leanscrap.EINTERNAL, "source returned no response for %s", u)
	}
	if resp.StatusCode > http.StatusOK {
		page := *u
		return leanscrap.Article{}, leanscrap.NewArticleError(&page, leanscrap.URLBroken)
	}

	tree, err := s.Parser.Parse(resp.Content)
	if err != nil {
		return leanscrap.Article{}, err
	}

	return leanscrap.Build(u, s.Extractor.Extract(tree))
}
