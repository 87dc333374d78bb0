package leanscrap

import (
	"net/url"
	"strings"
)

// Article is a validated post scraped from a single page.
// Values are produced by Build and are not modified afterwards.
type Article struct {
	OriginalURL string   `json:"originalUrl"`
	Title       string   `json:"title"`
	Meta        Meta     `json:"meta"`
	Authors     []Author `json:"authors"`
}

// Meta holds optional page metadata.
type Meta struct {
	Description string `json:"description"`
}

// Author identifies a post author and the page describing them.
type Author struct {
	FullName    string `json:"fullName"`
	OriginalURL string `json:"originalUrl"`
}

// Validate returns an error if the article breaks one of its invariants.
// Build never produces such an article; Validate guards values read back from storage.
func (a *Article) Validate() error {
	if !isAbsoluteURL(a.OriginalURL) {
		return Errorf(EINVALID, "article original URL must be absolute")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if len(a.Authors) == 0 {
		return Errorf(EINVALID, "article requires at least one author")
	}
	for _, author := range a.Authors {
		if author.FullName == "" {
			return Errorf(EINVALID, "author full name required")
		}
		if !isAbsoluteURL(author.OriginalURL) {
			return Errorf(EINVALID, "author original URL must be absolute")
		}
	}
	return nil
}

// Build validates the candidate fields extracted from sourceURL and returns
// the resulting Article.
//
// Every mandatory field is checked before failing, so the returned
// *ArticleError lists all missing fields in declaration order: title, author
// full name, author URL. The author URL is resolved against sourceURL; a
// target that cannot be parsed counts as missing. The description is optional
// and defaults to the empty string.
func Build(sourceURL *url.URL, fields CandidateFields) (Article, error) {
	if sourceURL == nil {
		return Article{}, Errorf(EINTERNAL, "source URL required")
	}

	title, hasTitle := mandatory(fields.Title)
	fullName, hasFullName := mandatory(fields.AuthorFullName)
	authorURL, hasAuthorURL := resolve(sourceURL, fields.AuthorURL)

	var reasons []Reason
	if !hasTitle {
		reasons = append(reasons, MissingTitle)
	}
	if !hasFullName {
		reasons = append(reasons, MissingAuthorFullname)
	}
	if !hasAuthorURL {
		reasons = append(reasons, MissingAuthorURL)
	}
	if len(reasons) > 0 {
		u := *sourceURL
		return Article{}, NewArticleError(&u, reasons...)
	}

	return Article{
		OriginalURL: sourceURL.String(),
		Title:       title,
		Meta: Meta{
			Description: strings.TrimSpace(fields.Description.Or("")),
		},
		Authors: []Author{
			{FullName: fullName, OriginalURL: authorURL},
		},
	}, nil
}

// mandatory returns the trimmed value of f and whether it is usable.
// Present but blank text is treated as missing.
func mandatory(f Field) (string, bool) {
	v, ok := f.Get()
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// resolve returns f resolved against base as an absolute URL string.
func resolve(base *url.URL, f Field) (string, bool) {
	raw, ok := mandatory(f)
	if !ok {
		return "", false
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}

// ParseArticleURL parses raw as an absolute http or https page URL.
func ParseArticleURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "URL %q has no host", raw)
	}
	return u, nil
}
