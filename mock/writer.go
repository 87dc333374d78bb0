package mock

import (
	"context"

	"github.com/fwojciec/leanscrap"
)

var _ leanscrap.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of leanscrap.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *leanscrap.StoredArticle) error
	CommitFn       func() error
	AbortFn        func() error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *leanscrap.StoredArticle) error {
	return w.WriteArticleFn(ctx, article)
}

func (w *ArticleWriter) Commit() error {
	return w.CommitFn()
}

func (w *ArticleWriter) Abort() error {
	return w.AbortFn()
}
