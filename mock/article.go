package mock

import (
	"context"

	"github.com/fwojciec/leanscrap"
)

var _ leanscrap.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of leanscrap.ArticleService.
type ArticleService struct {
	SaveArticleFn     func(ctx context.Context, article leanscrap.Article) (*leanscrap.StoredArticle, error)
	FindArticleByIDFn func(ctx context.Context, id string) (*leanscrap.StoredArticle, error)
	FindArticlesFn    func(ctx context.Context, filter leanscrap.ArticleFilter) ([]*leanscrap.StoredArticle, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) SaveArticle(ctx context.Context, article leanscrap.Article) (*leanscrap.StoredArticle, error) {
	return s.SaveArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*leanscrap.StoredArticle, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter leanscrap.ArticleFilter) ([]*leanscrap.StoredArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
