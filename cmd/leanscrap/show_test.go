package main_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/leanscrap"
	main "github.com/fwojciec/leanscrap/cmd/leanscrap"
	"github.com/fwojciec/leanscrap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByURLService(t *testing.T, stored ...*leanscrap.StoredArticle) *mock.ArticleService {
	t.Helper()
	return &mock.ArticleService{
		FindArticlesFn: func(_ context.Context, f leanscrap.ArticleFilter) ([]*leanscrap.StoredArticle, error) {
			require.NotNil(t, f.OriginalURL)
			var out []*leanscrap.StoredArticle
			for _, s := range stored {
				if s.Article.OriginalURL == *f.OriginalURL {
					out = append(out, s)
				}
			}
			return out, nil
		},
	}
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stored article", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Articles = findByURLService(t, testStored("art-1", postURL))

		err := (&main.ShowCmd{URL: postURL}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "TPS, the Thinking People System")
		assert.Contains(t, output, "id:          art-1")
		assert.Contains(t, output, "updated:     2025-01-15 10:00:00")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Articles = findByURLService(t, testStored("art-1", postURL))

		require.NoError(t, (&main.ShowCmd{URL: postURL, JSON: true}).Run(deps))

		var got leanscrap.StoredArticle
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, *testStored("art-1", postURL), got)
	})

	t.Run("trims URL before lookup", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps()
		deps.Articles = findByURLService(t, testStored("art-1", postURL))

		require.NoError(t, (&main.ShowCmd{URL: "  " + postURL + " "}).Run(deps))
	})

	t.Run("reports missing article", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		deps.Articles = findByURLService(t)

		err := (&main.ShowCmd{URL: postURL}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, leanscrap.ENOTFOUND, leanscrap.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps()
		deps.Articles = findByURLService(t)

		err := (&main.ShowCmd{URL: "not a url"}).Run(deps)

		assert.Equal(t, leanscrap.EINVALID, leanscrap.ErrorCode(err))
	})
}
