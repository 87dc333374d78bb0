package leanscrap

import (
	"context"
	"time"
)

// StoredArticle is an Article saved in the archive.
type StoredArticle struct {
	ID          string    `json:"id"`
	Article     Article   `json:"article"`
	ContentHash string    `json:"contentHash"`
	ScrapedAt   time.Time `json:"scrapedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArticleService represents a service for managing archived articles.
type ArticleService interface {
	// SaveArticle stores the article keyed by its original URL.
	// An existing entry is replaced only when the article content changed.
	SaveArticle(ctx context.Context, article Article) (*StoredArticle, error)

	// FindArticleByID retrieves a stored article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*StoredArticle, error)

	// FindArticles retrieves stored articles matching the filter,
	// most recently updated first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*StoredArticle, error)

	// DeleteArticle permanently removes a stored article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID          *string `json:"id"`
	OriginalURL *string `json:"originalUrl"`
	AuthorName  *string `json:"authorName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleWriter exports stored articles. Written articles become visible
// at the target only after Commit; Abort discards them.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *StoredArticle) error
	Commit() error
	Abort() error
}
