// Package fs exports archived articles as Markdown files.
package fs

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/leanscrap"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path rooted at the
// host. The query string is kept because article pages are often addressed
// by query parameters alone.
//
//	https://www.lean.org/leanpost/Posting.cfm?LeanPostId=944
//	  → www.lean.org/leanpost/Posting.cfm_LeanPostId-944.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", leanscrap.Errorf(leanscrap.EINVALID, "article URL has no host: %q", rawURL)
	}

	p := path.Clean("/" + u.Path)
	if p == "/" || strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index")
	}
	if u.RawQuery != "" {
		p += "_" + sanitize(u.RawQuery)
	}

	return sanitize(u.Hostname()) + sanitize(p) + ".md", nil
}

// sanitize replaces characters that are awkward in file names with '-'.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-' || r == '/':
			return r
		default:
			return '-'
		}
	}, s)
}

type frontmatter struct {
	Title       string              `yaml:"title"`
	Source      string              `yaml:"source"`
	Description string              `yaml:"description,omitempty"`
	Authors     []frontmatterAuthor `yaml:"authors"`
	Scraped     string              `yaml:"scraped"`
	Updated     string              `yaml:"updated"`
}

type frontmatterAuthor struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FormatArticle renders a stored article as Markdown with YAML frontmatter.
func FormatArticle(a *leanscrap.StoredArticle) (string, error) {
	fm := frontmatter{
		Title:       a.Article.Title,
		Source:      a.Article.OriginalURL,
		Description: a.Article.Meta.Description,
		Scraped:     a.ScrapedAt.UTC().Format("2006-01-02"),
		Updated:     a.UpdatedAt.UTC().Format("2006-01-02"),
	}
	for _, author := range a.Article.Authors {
		fm.Authors = append(fm.Authors, frontmatterAuthor{Name: author.FullName, URL: author.OriginalURL})
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	buf.WriteString("---\n\n# ")
	buf.WriteString(a.Article.Title)
	buf.WriteString("\n")
	if a.Article.Meta.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(a.Article.Meta.Description)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// Ensure Writer implements leanscrap.ArticleWriter at compile time.
var _ leanscrap.ArticleWriter = (*Writer)(nil)

// Writer exports articles into a directory. Files are staged in a sibling
// "<dir>.tmp" directory and moved into place on Commit, so an interrupted
// export never leaves half-written files in dir. Files already in dir that
// the export does not produce are left alone.
type Writer struct {
	dir string
}

// NewWriter creates a Writer that exports into dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: filepath.Clean(dir)}
}

func (w *Writer) stagingDir() string {
	return w.dir + ".tmp"
}

// WriteArticle stages an article as a Markdown file.
func (w *Writer) WriteArticle(ctx context.Context, a *leanscrap.StoredArticle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.Article.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(a.Article.OriginalURL)
	if err != nil {
		return err
	}
	content, err := FormatArticle(a)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.stagingDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit moves every staged file into the export directory and removes the
// staging directory.
func (w *Writer) Commit() error {
	staging := w.stagingDir()
	err := filepath.WalkDir(staging, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(staging, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(w.dir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return os.Rename(p, dst)
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.RemoveAll(staging)
}

// Abort discards staged files.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.stagingDir())
}
