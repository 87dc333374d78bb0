package main

import (
	"fmt"

	"github.com/fwojciec/leanscrap"
)

// Run executes the export command. Nothing appears in the directory unless
// every article was written.
func (c *ExportCmd) Run(deps *Dependencies) error {
	articles, err := deps.Articles.FindArticles(deps.Ctx, leanscrap.ArticleFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leanscrap.ErrorMessage(err))
		return err
	}

	w := deps.NewWriter(c.Dir)
	for _, a := range articles {
		if err := w.WriteArticle(deps.Ctx, a); err != nil {
			_ = w.Abort()
			fmt.Fprintf(deps.Stderr, "error: exporting %s: %v\n", a.Article.OriginalURL, err)
			return err
		}
	}
	if err := w.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d articles to %s\n", len(articles), c.Dir)
	return nil
}
