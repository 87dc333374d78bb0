package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/leanscrap"
	"github.com/fwojciec/leanscrap/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticle(url, title string, authors ...string) leanscrap.Article {
	a := leanscrap.Article{
		OriginalURL: url,
		Title:       title,
		Meta:        leanscrap.Meta{Description: "About " + title},
	}
	for i, name := range authors {
		a.Authors = append(a.Authors, leanscrap.Author{
			FullName:    name,
			OriginalURL: fmt.Sprintf("https://www.lean.org/WhoWeAre/LeanPerson.cfm?LeanPersonId=%d", 100+i),
		})
	}
	return a
}

// clock returns a Now func that advances by one minute per call.
func clock() func() time.Time {
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func setupService(t *testing.T) *sqlite.ArticleService {
	t.Helper()
	svc := sqlite.NewArticleService(setupTestDB(t))
	svc.Now = clock()
	return svc
}

func TestArticleService_SaveArticle(t *testing.T) {
	t.Parallel()

	t.Run("stores new article with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := setupService(t)
		article := newArticle("https://example.com/post", "Lean Thinking", "Michael Ballé", "Jim Womack")

		stored, err := svc.SaveArticle(context.Background(), article)

		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
		assert.Equal(t, article, stored.Article)
		assert.Equal(t, sqlite.HashArticle(article), stored.ContentHash)
		assert.False(t, stored.ScrapedAt.IsZero())
		assert.Equal(t, stored.ScrapedAt, stored.UpdatedAt)
	})

	t.Run("rejects invalid article", func(t *testing.T) {
		t.Parallel()

		svc := setupService(t)

		_, err := svc.SaveArticle(context.Background(), leanscrap.Article{OriginalURL: "https://example.com/post"})

		require.Error(t, err)
		assert.Equal(t, leanscrap.EINVALID, leanscrap.ErrorCode(err))
	})

	t.Run("unchanged article keeps ID and update time", func(t *testing.T) {
		t.Parallel()

		svc := setupService(t)
		ctx := context.Background()
		article := newArticle("https://example.com/post", "Lean Thinking", "Michael Ballé")

		first, err := svc.SaveArticle(ctx, article)
		require.NoError(t, err)
		second, err := svc.SaveArticle(ctx, article)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
		assert.True(t, second.ScrapedAt.After(first.ScrapedAt))
	})

	t.Run("changed article replaces fields and authors", func(t *testing.T) {
		t.Parallel()

		svc := setupService(t)
		ctx := context.Background()

		first, err := svc.SaveArticle(ctx, newArticle("https://example.com/post", "Draft", "Michael Ballé", "Jim Womack"))
		require.NoError(t, err)

		updated := newArticle("https://example.com/post", "Final", "Michael Ballé")
		second, err := svc.SaveArticle(ctx, updated)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, updated, second.Article)
		assert.NotEqual(t, first.ContentHash, second.ContentHash)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

		all, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestArticleService_FindArticleByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored article", func(t *testing.T) {
		t.Parallel()

		svc := setupService(t)
		stored, err := svc.SaveArticle(context.Background(), newArticle("https://example.com/post", "Lean", "A"))
		require.NoError(t, err)

		found, err := svc.FindArticleByID(context.Background(), stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored, found)
	})

	t.Run("returns ENOTFOUND for missing article", func(t *testing.T) {
		t.Parallel()

		_, err := setupService(t).FindArticleByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, leanscrap.ENOTFOUND, leanscrap.ErrorCode(err))
	})
}

func TestArticleService_FindArticles(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	for _, a := range []leanscrap.Article{
		newArticle("https://example.com/1", "One", "Michael Ballé"),
		newArticle("https://example.com/2", "Two", "Jim Womack"),
		newArticle("https://example.com/3", "Three", "Jim Womack", "Michael Ballé"),
	} {
		_, err := svc.SaveArticle(ctx, a)
		require.NoError(t, err)
	}

	titles := func(articles []*leanscrap.StoredArticle) []string {
		var out []string
		for _, a := range articles {
			out = append(out, a.Article.Title)
		}
		return out
	}

	t.Run("returns most recently updated first", func(t *testing.T) {
		t.Parallel()

		articles, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Three", "Two", "One"}, titles(articles))
	})

	t.Run("filters by author name ignoring case", func(t *testing.T) {
		t.Parallel()

		name := "jim womack"
		articles, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{AuthorName: &name})
		require.NoError(t, err)
		assert.Equal(t, []string{"Three", "Two"}, titles(articles))
	})

	t.Run("filters by original URL", func(t *testing.T) {
		t.Parallel()

		u := "https://example.com/2"
		articles, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{OriginalURL: &u})
		require.NoError(t, err)
		assert.Equal(t, []string{"Two"}, titles(articles))
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		articles, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Two"}, titles(articles))
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		articles, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"One"}, titles(articles))
	})

	t.Run("keeps author order", func(t *testing.T) {
		t.Parallel()

		u := "https://example.com/3"
		articles, err := svc.FindArticles(ctx, leanscrap.ArticleFilter{OriginalURL: &u})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		require.Len(t, articles[0].Article.Authors, 2)
		assert.Equal(t, "Jim Womack", articles[0].Article.Authors[0].FullName)
		assert.Equal(t, "Michael Ballé", articles[0].Article.Authors[1].FullName)
	})
}

func TestArticleService_DeleteArticle(t *testing.T) {
	t.Parallel()

	t.Run("removes article and its authors", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()
		stored, err := svc.SaveArticle(ctx, newArticle("https://example.com/post", "Lean", "A", "B"))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteArticle(ctx, stored.ID))

		_, err = svc.FindArticleByID(ctx, stored.ID)
		assert.Equal(t, leanscrap.ENOTFOUND, leanscrap.ErrorCode(err))
		var authors int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM article_authors").Scan(&authors))
		assert.Zero(t, authors)
	})

	t.Run("returns ENOTFOUND for missing article", func(t *testing.T) {
		t.Parallel()

		err := setupService(t).DeleteArticle(context.Background(), "missing")

		assert.Equal(t, leanscrap.ENOTFOUND, leanscrap.ErrorCode(err))
	})
}

func TestHashArticle(t *testing.T) {
	t.Parallel()

	a := newArticle("https://example.com/post", "Lean", "A")
	b := newArticle("https://example.com/post", "Lean", "A")
	c := newArticle("https://example.com/post", "Lean!", "A")

	assert.Equal(t, sqlite.HashArticle(a), sqlite.HashArticle(b))
	assert.NotEqual(t, sqlite.HashArticle(a), sqlite.HashArticle(c))
}
