package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/leanscrap"
	"golang.org/x/sync/errgroup"
)

type scrapeResult struct {
	url     string
	article leanscrap.Article
	stored  *leanscrap.StoredArticle
	err     error
}

// Run executes the scrape command. URLs are scraped concurrently and
// reported in argument order. A failure for one URL does not stop the others.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	results := make([]scrapeResult, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, raw := range c.URLs {
		g.Go(func() error {
			results[i] = c.scrapeOne(deps, raw)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	enc := json.NewEncoder(deps.Stdout)
	for _, r := range results {
		if r.err != nil {
			failed++
			printScrapeError(deps.Stderr, r.url, r.err)
			continue
		}

		switch {
		case c.JSON && r.stored != nil:
			if err := enc.Encode(r.stored); err != nil {
				return err
			}
		case c.JSON:
			if err := enc.Encode(r.article); err != nil {
				return err
			}
		default:
			printArticle(deps.Stdout, r.article)
			if r.stored != nil {
				fmt.Fprintf(deps.Stdout, "  saved:       %s\n", r.stored.ID)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("scrape failed for %d of %d URLs", failed, len(c.URLs))
	}
	return nil
}

func (c *ScrapeCmd) scrapeOne(deps *Dependencies, raw string) scrapeResult {
	r := scrapeResult{url: raw}

	u, err := leanscrap.ParseArticleURL(raw)
	if err != nil {
		r.err = err
		return r
	}

	if r.article, r.err = deps.Scraper.ScrapArticle(deps.Ctx, u); r.err != nil {
		return r
	}

	if c.Save {
		r.stored, r.err = deps.Articles.SaveArticle(deps.Ctx, r.article)
	}
	return r
}

// printScrapeError reports a failed scrape. Article errors list one reason
// per line.
func printScrapeError(w io.Writer, url string, err error) {
	var ae *leanscrap.ArticleError
	switch {
	case errors.As(err, &ae):
		fmt.Fprintf(w, "error: %s\n", ae.Error())
		for _, r := range ae.Reasons {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	case leanscrap.ErrorCode(err) == leanscrap.EINTERNAL:
		fmt.Fprintf(w, "error: %s: %v\n", url, err)
	default:
		fmt.Fprintf(w, "error: %s: %s\n", url, leanscrap.ErrorMessage(err))
	}
}

func printArticle(w io.Writer, a leanscrap.Article) {
	fmt.Fprintln(w, a.Title)
	fmt.Fprintf(w, "  url:         %s\n", a.OriginalURL)
	if a.Meta.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", a.Meta.Description)
	}
	for _, author := range a.Authors {
		fmt.Fprintf(w, "  author:      %s <%s>\n", author.FullName, author.OriginalURL)
	}
}
