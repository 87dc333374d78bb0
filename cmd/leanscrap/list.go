package main

import (
	"fmt"

	"github.com/fwojciec/leanscrap"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := leanscrap.ArticleFilter{Limit: c.Limit}
	if c.Author != "" {
		filter.AuthorName = &c.Author
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leanscrap.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'leanscrap scrape --save URL' to archive one.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			a.ID, a.UpdatedAt.Format("2006-01-02"), a.Article.Title, a.Article.OriginalURL)
	}

	return nil
}
