package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/leanscrap"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	stored, err := findByURL(deps, c.URL)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stored)
	}

	printArticle(deps.Stdout, stored.Article)
	fmt.Fprintf(deps.Stdout, "  id:          %s\n", stored.ID)
	fmt.Fprintf(deps.Stdout, "  scraped:     %s\n", stored.ScrapedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  updated:     %s\n", stored.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// findByURL looks up an archived article by its original URL and reports
// lookup failures on stderr.
func findByURL(deps *Dependencies, raw string) (*leanscrap.StoredArticle, error) {
	u, err := leanscrap.ParseArticleURL(raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leanscrap.ErrorMessage(err))
		return nil, err
	}
	normalized := u.String()

	articles, err := deps.Articles.FindArticles(deps.Ctx, leanscrap.ArticleFilter{OriginalURL: &normalized, Limit: 1})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leanscrap.ErrorMessage(err))
		return nil, err
	}
	if len(articles) == 0 {
		fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'leanscrap list' to see archived articles.\n", normalized)
		return nil, leanscrap.Errorf(leanscrap.ENOTFOUND, "article %q not found", normalized)
	}
	return articles[0], nil
}
