package mock

import "github.com/fwojciec/leanscrap"

var _ leanscrap.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of leanscrap.FieldExtractor.
type FieldExtractor struct {
	ExtractFn func(tree leanscrap.DocumentTree) leanscrap.CandidateFields
}

func (e *FieldExtractor) Extract(tree leanscrap.DocumentTree) leanscrap.CandidateFields {
	return e.ExtractFn(tree)
}
