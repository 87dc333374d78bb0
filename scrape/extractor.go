package scrape

import (
	"strings"

	"github.com/fwojciec/leanscrap"
)

// Ensure Extractor implements leanscrap.FieldExtractor at compile time.
var _ leanscrap.FieldExtractor = (*Extractor)(nil)

// Rule locates a single field in a document.
type Rule struct {
	// Path is a chain of CSS selectors. Each step searches inside the
	// element matched by the previous one.
	Path []string

	// Attr names the attribute to read. Empty reads the element's text.
	Attr string

	// EmptyIfNoAttr yields an empty value instead of an absent one when the
	// element exists but lacks Attr.
	EmptyIfNoAttr bool
}

// Apply runs the rule against tree. A missing element anywhere along the
// path yields an absent field. Values are trimmed.
func (r Rule) Apply(tree leanscrap.DocumentTree) leanscrap.Field {
	if len(r.Path) == 0 {
		return leanscrap.Absent()
	}

	node, ok := tree.Find(r.Path[0])
	for _, selector := range r.Path[1:] {
		if !ok {
			break
		}
		node, ok = node.Find(selector)
	}
	if !ok {
		return leanscrap.Absent()
	}

	if r.Attr == "" {
		return leanscrap.Present(strings.TrimSpace(node.Text()))
	}

	v, ok := node.Attr(r.Attr)
	if !ok {
		if r.EmptyIfNoAttr {
			return leanscrap.Present("")
		}
		return leanscrap.Absent()
	}
	return leanscrap.Present(strings.TrimSpace(v))
}

// Rules holds one rule per candidate field.
type Rules struct {
	Title          Rule
	Description    Rule
	AuthorFullName Rule
	AuthorURL      Rule
}

// Selectors for Lean Enterprise Institute post pages.
const (
	PostHeaderSelector  = "div.posthead"
	TitleSelector       = "h1"
	AuthorLinkSelector  = ".author a"
	DescriptionSelector = `meta[property="og:description"]`
)

// DefaultRules returns the rules for lean.org post pages.
func DefaultRules() Rules {
	return Rules{
		Title: Rule{
			Path: []string{PostHeaderSelector, TitleSelector},
		},
		Description: Rule{
			Path:          []string{DescriptionSelector},
			Attr:          "content",
			EmptyIfNoAttr: true,
		},
		AuthorFullName: Rule{
			Path: []string{PostHeaderSelector, AuthorLinkSelector},
		},
		AuthorURL: Rule{
			Path: []string{PostHeaderSelector, AuthorLinkSelector},
			Attr: "href",
		},
	}
}

// Extractor extracts candidate article fields using CSS selector rules.
type Extractor struct {
	Rules Rules
}

// NewExtractor creates an Extractor using DefaultRules.
func NewExtractor() *Extractor {
	return &Extractor{Rules: DefaultRules()}
}

// Extract applies each rule to tree. It never fails; fields that cannot be
// located are absent.
func (e *Extractor) Extract(tree leanscrap.DocumentTree) leanscrap.CandidateFields {
	return leanscrap.CandidateFields{
		Title:          e.Rules.Title.Apply(tree),
		Description:    e.Rules.Description.Apply(tree),
		AuthorFullName: e.Rules.AuthorFullName.Apply(tree),
		AuthorURL:      e.Rules.AuthorURL.Apply(tree),
	}
}
