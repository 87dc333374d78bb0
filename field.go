package leanscrap

// Field is a candidate value extracted from a document.
// The zero value is absent. A present field may hold the empty string.
type Field struct {
	value   string
	present bool
}

// Present returns a field holding v.
func Present(v string) Field {
	return Field{value: v, present: true}
}

// Absent returns a field with no value.
func Absent() Field {
	return Field{}
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.value, f.present
}

// IsPresent reports whether the field holds a value.
func (f Field) IsPresent() bool {
	return f.present
}

// Or returns the value if present, otherwise def.
func (f Field) Or(def string) string {
	if !f.present {
		return def
	}
	return f.value
}

// CandidateFields holds the values extracted from one page before validation.
type CandidateFields struct {
	Title          Field
	Description    Field
	AuthorFullName Field
	AuthorURL      Field
}
