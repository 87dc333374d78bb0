package leanscrap

// FieldExtractor pulls candidate article fields out of a parsed document.
type FieldExtractor interface {
	// Extract never fails; fields that cannot be found are absent.
	Extract(tree DocumentTree) CandidateFields
}
