package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/leanscrap"
)

// Ensure LoggingArticleService implements leanscrap.ArticleService.
var _ leanscrap.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with debug logging.
type LoggingArticleService struct {
	next   leanscrap.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next leanscrap.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

func (s *LoggingArticleService) SaveArticle(ctx context.Context, article leanscrap.Article) (stored *leanscrap.StoredArticle, err error) {
	defer func(begin time.Time) {
		var id string
		if stored != nil {
			id = stored.ID
		}
		s.logger.Debug("save article",
			"url", article.OriginalURL,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveArticle(ctx, article)
}

func (s *LoggingArticleService) FindArticleByID(ctx context.Context, id string) (stored *leanscrap.StoredArticle, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByID(ctx, id)
}

func (s *LoggingArticleService) FindArticles(ctx context.Context, filter leanscrap.ArticleFilter) (articles []*leanscrap.StoredArticle, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find articles",
			"count", len(articles),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}

func (s *LoggingArticleService) DeleteArticle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteArticle(ctx, id)
}
