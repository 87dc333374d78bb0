// Package goquery implements leanscrap.DocumentParser on top of goquery
// CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/leanscrap"
	"golang.org/x/net/html"
)

// Ensure Parser implements leanscrap.DocumentParser at compile time.
var _ leanscrap.DocumentParser = (*Parser)(nil)

// Parser parses HTML into a goquery-backed document tree.
// Parser is stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses content as HTML. The HTML5 parsing algorithm recovers from
// malformed markup, so broken pages produce a tree with missing nodes.
func (p *Parser) Parse(content string) (leanscrap.DocumentTree, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, leanscrap.Errorf(leanscrap.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Document is a parsed HTML document.
type Document struct {
	doc *goquery.Document
}

// Find returns the first element matching selector.
// An invalid selector matches nothing.
func (d *Document) Find(selector string) (leanscrap.Node, bool) {
	return first(d.doc.Find(selector))
}

// Node wraps a single goquery selection.
type Node struct {
	sel *goquery.Selection
}

// Find returns the first descendant matching selector.
func (n *Node) Find(selector string) (leanscrap.Node, bool) {
	return first(n.sel.Find(selector))
}

// Text returns the combined text of the node and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}

// Attr returns the named attribute value.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func first(sel *goquery.Selection) (leanscrap.Node, bool) {
	sel = sel.First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Node{sel: sel}, true
}
