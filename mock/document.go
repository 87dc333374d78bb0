package mock

import "github.com/fwojciec/leanscrap"

var _ leanscrap.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of leanscrap.DocumentParser.
type DocumentParser struct {
	ParseFn func(content string) (leanscrap.DocumentTree, error)
}

func (p *DocumentParser) Parse(content string) (leanscrap.DocumentTree, error) {
	return p.ParseFn(content)
}

var _ leanscrap.DocumentTree = (*DocumentTree)(nil)

// DocumentTree is a mock implementation of leanscrap.DocumentTree.
type DocumentTree struct {
	FindFn func(selector string) (leanscrap.Node, bool)
}

func (d *DocumentTree) Find(selector string) (leanscrap.Node, bool) {
	return d.FindFn(selector)
}
