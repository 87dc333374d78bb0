// Package leanscrap scrapes Lean Enterprise Institute posts into validated
// Article records. It fetches a page, extracts the title, description and
// author with CSS selectors, and reports every missing mandatory field in a
// single ArticleError.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package leanscrap
