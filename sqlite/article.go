package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/leanscrap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leanscrap.ArticleService = (*ArticleService)(nil)

// ArticleService implements leanscrap.ArticleService using SQLite.
type ArticleService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db, Now: time.Now}
}

// HashArticle returns the hex xxHash of the article's canonical JSON form.
func HashArticle(a leanscrap.Article) string {
	b, _ := json.Marshal(a)
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}

// SaveArticle stores the article keyed by its original URL. Saving an
// article whose content hash matches the stored one only refreshes
// ScrapedAt; otherwise the stored fields and authors are replaced and
// UpdatedAt advances. The ID of an existing entry never changes.
func (s *ArticleService) SaveArticle(ctx context.Context, article leanscrap.Article) (*leanscrap.StoredArticle, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := s.Now().UTC().Truncate(time.Second)
	hash := HashArticle(article)

	var id, storedHash, updatedAt string
	err = tx.QueryRowContext(ctx, `
		SELECT id, content_hash, updated_at FROM articles WHERE original_url = ?
	`, article.OriginalURL).Scan(&id, &storedHash, &updatedAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.New().String()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO articles (id, original_url, title, description, content_hash, scraped_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, article.OriginalURL, article.Title, article.Meta.Description, hash,
			formatTime(now), formatTime(now)); err != nil {
			return nil, err
		}
		if err := insertAuthors(ctx, tx, id, article.Authors); err != nil {
			return nil, err
		}

	case err != nil:
		return nil, err

	case storedHash == hash:
		if _, err := tx.ExecContext(ctx, `UPDATE articles SET scraped_at = ? WHERE id = ?`,
			formatTime(now), id); err != nil {
			return nil, err
		}

	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE articles
			SET title = ?, description = ?, content_hash = ?, scraped_at = ?, updated_at = ?
			WHERE id = ?
		`, article.Title, article.Meta.Description, hash, formatTime(now), formatTime(now), id); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM article_authors WHERE article_id = ?`, id); err != nil {
			return nil, err
		}
		if err := insertAuthors(ctx, tx, id, article.Authors); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.FindArticleByID(ctx, id)
}

// FindArticleByID retrieves a stored article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*leanscrap.StoredArticle, error) {
	articles, err := s.FindArticles(ctx, leanscrap.ArticleFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, leanscrap.Errorf(leanscrap.ENOTFOUND, "article not found")
	}
	return articles[0], nil
}

// FindArticles retrieves stored articles matching the filter, most recently
// updated first. The author filter matches any author's full name,
// ignoring ASCII case.
func (s *ArticleService) FindArticles(ctx context.Context, filter leanscrap.ArticleFilter) ([]*leanscrap.StoredArticle, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, original_url, title, description, content_hash, scraped_at, updated_at FROM articles WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.OriginalURL != nil {
		query.WriteString(" AND original_url = ?")
		args = append(args, *filter.OriginalURL)
	}
	if filter.AuthorName != nil {
		query.WriteString(` AND EXISTS (
			SELECT 1 FROM article_authors
			WHERE article_id = articles.id AND full_name = ? COLLATE NOCASE)`)
		args = append(args, *filter.AuthorName)
	}

	query.WriteString(" ORDER BY updated_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	articles, err := s.scanArticles(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	// Authors are loaded after the article rows are closed: the pool holds a
	// single connection.
	for _, a := range articles {
		if a.Article.Authors, err = s.findAuthors(ctx, a.ID); err != nil {
			return nil, err
		}
		if err := a.Article.Validate(); err != nil {
			return nil, leanscrap.Errorf(leanscrap.EINTERNAL, "stored article %s is invalid: %s", a.ID, leanscrap.ErrorMessage(err))
		}
	}

	return articles, nil
}

// DeleteArticle permanently removes a stored article and its authors.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return leanscrap.Errorf(leanscrap.ENOTFOUND, "article not found")
	}

	return nil
}

func (s *ArticleService) scanArticles(ctx context.Context, query string, args ...any) ([]*leanscrap.StoredArticle, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*leanscrap.StoredArticle
	for rows.Next() {
		var a leanscrap.StoredArticle
		var scrapedAt, updatedAt string

		if err := rows.Scan(&a.ID, &a.Article.OriginalURL, &a.Article.Title, &a.Article.Meta.Description,
			&a.ContentHash, &scrapedAt, &updatedAt); err != nil {
			return nil, err
		}
		if a.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		articles = append(articles, &a)
	}

	return articles, rows.Err()
}

func (s *ArticleService) findAuthors(ctx context.Context, articleID string) ([]leanscrap.Author, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT full_name, original_url FROM article_authors
		WHERE article_id = ?
		ORDER BY position ASC
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []leanscrap.Author
	for rows.Next() {
		var a leanscrap.Author
		if err := rows.Scan(&a.FullName, &a.OriginalURL); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}

	return authors, rows.Err()
}

func insertAuthors(ctx context.Context, tx *sql.Tx, articleID string, authors []leanscrap.Author) error {
	for i, a := range authors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO article_authors (article_id, position, full_name, original_url)
			VALUES (?, ?, ?, ?)
		`, articleID, i, a.FullName, a.OriginalURL); err != nil {
			return err
		}
	}
	return nil
}
