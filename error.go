package leanscrap

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Application error codes.
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("leanscrap error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// An ArticleError reports EUNAVAILABLE when the page could not be fetched
// and EINVALID when fields were missing.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ae *ArticleError
	if errors.As(err, &ae) {
		if ae.Has(URLBroken) {
			return EUNAVAILABLE
		}
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ae *ArticleError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return "Internal error."
}

// Reason identifies why an article could not be produced.
type Reason string

// Article failure reasons. URLBroken is never combined with the others.
const (
	URLBroken             Reason = "URLBroken"
	MissingTitle          Reason = "MissingTitle"
	MissingAuthorFullname Reason = "MissingAuthorFullname"
	MissingAuthorURL      Reason = "MissingAuthorURL"
)

// ArticleError reports every reason an article could not be scraped from URL.
type ArticleError struct {
	// URL is the page that failed. Nil only for internal errors.
	URL     *url.URL
	Reasons []Reason
}

// NewArticleError returns an ArticleError for u with the given reasons.
// Duplicate reasons are dropped, order is kept.
func NewArticleError(u *url.URL, reasons ...Reason) *ArticleError {
	var rs []Reason
	for _, r := range reasons {
		if !slices.Contains(rs, r) {
			rs = append(rs, r)
		}
	}
	return &ArticleError{URL: u, Reasons: rs}
}

func (e *ArticleError) Error() string {
	parts := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		parts[i] = string(r)
	}
	if e.URL == nil {
		return "article error: " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("article error for %s: %s", e.URL, strings.Join(parts, ", "))
}

// Has reports whether r is one of the error's reasons.
func (e *ArticleError) Has(r Reason) bool {
	return slices.Contains(e.Reasons, r)
}
