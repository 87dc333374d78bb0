package main

import (
	"fmt"

	lshttp "github.com/fwojciec/leanscrap/http"
)

// Run executes the serve command. It blocks until the context is cancelled
// and then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := lshttp.NewServer()
	s.Addr = c.Addr
	s.Scraper = deps.Scraper
	s.Articles = deps.Articles
	s.Metrics = deps.Metrics
	if deps.Logger != nil {
		s.Logger = deps.Logger
	}

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	return s.Close()
}
