package main

import (
	"fmt"

	"github.com/fwojciec/leanscrap"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return leanscrap.Errorf(leanscrap.EINVALID, "use --force to confirm deletion")
	}

	stored, err := findByURL(deps, c.URL)
	if err != nil {
		return err
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, stored.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leanscrap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %q\n", stored.Article.Title)
	return nil
}
