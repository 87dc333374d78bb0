package main_test

import (
	"bytes"
	"context"
	"time"

	"github.com/fwojciec/leanscrap"
	main "github.com/fwojciec/leanscrap/cmd/leanscrap"
)

const postURL = "https://www.lean.org/leanpost/Posting.cfm?LeanPostId=944"

func testDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func testArticle(url string) leanscrap.Article {
	return leanscrap.Article{
		OriginalURL: url,
		Title:       "TPS, the Thinking People System",
		Meta:        leanscrap.Meta{Description: "The twin pillars."},
		Authors: []leanscrap.Author{
			{FullName: "Michael Ballé", OriginalURL: "https://www.lean.org/WhoWeAre/LeanPerson.cfm?LeanPersonId=134"},
		},
	}
}

func testStored(id, url string) *leanscrap.StoredArticle {
	return &leanscrap.StoredArticle{
		ID:        id,
		Article:   testArticle(url),
		ScrapedAt: time.Date(2025, 1, 16, 11, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}
