package leanscrap

// Node is an element of a parsed document.
type Node interface {
	// Find returns the first descendant matching the CSS selector.
	Find(selector string) (Node, bool)

	// Text returns the combined text content of the node and its descendants.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}

// DocumentTree is a parsed document that can be queried with CSS selectors.
type DocumentTree interface {
	// Find returns the first element matching the CSS selector.
	Find(selector string) (Node, bool)
}

// DocumentParser parses raw markup into a queryable tree.
// Malformed markup yields a tree with missing nodes rather than an error.
type DocumentParser interface {
	Parse(content string) (DocumentTree, error)
}
