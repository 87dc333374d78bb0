package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/leanscrap"
	main "github.com/fwojciec/leanscrap/cmd/leanscrap"
	"github.com/fwojciec/leanscrap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	articles := &mock.ArticleService{
		FindArticlesFn: func(context.Context, leanscrap.ArticleFilter) ([]*leanscrap.StoredArticle, error) {
			return []*leanscrap.StoredArticle{
				testStored("art-1", postURL),
				testStored("art-2", "https://example.com/post"),
			}, nil
		},
	}

	t.Run("writes every article and commits", func(t *testing.T) {
		t.Parallel()

		var dir string
		var written []string
		committed := false
		deps, stdout, _ := testDeps()
		deps.Articles = articles
		deps.NewWriter = func(d string) leanscrap.ArticleWriter {
			dir = d
			return &mock.ArticleWriter{
				WriteArticleFn: func(_ context.Context, a *leanscrap.StoredArticle) error {
					written = append(written, a.ID)
					return nil
				},
				CommitFn: func() error {
					committed = true
					return nil
				},
			}
		}

		err := (&main.ExportCmd{Dir: "out"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "out", dir)
		assert.Equal(t, []string{"art-1", "art-2"}, written)
		assert.True(t, committed)
		assert.Contains(t, stdout.String(), "Exported 2 articles to out")
	})

	t.Run("aborts on write failure", func(t *testing.T) {
		t.Parallel()

		aborted := false
		deps, _, stderr := testDeps()
		deps.Articles = articles
		deps.NewWriter = func(string) leanscrap.ArticleWriter {
			return &mock.ArticleWriter{
				WriteArticleFn: func(context.Context, *leanscrap.StoredArticle) error {
					return errors.New("disk full")
				},
				CommitFn: func() error {
					t.Fatal("Commit must not be called")
					return nil
				},
				AbortFn: func() error {
					aborted = true
					return nil
				},
			}
		}

		err := (&main.ExportCmd{Dir: "out"}).Run(deps)

		require.Error(t, err)
		assert.True(t, aborted)
		assert.Contains(t, stderr.String(), "disk full")
	})
}
