package model

import "strings"

// Query is a free-form search request. Raw preserves the original text
// for logging and explanation; Normalized is lower-cased and used for
// matching.
type Query struct {
	Raw        string
	Normalized string
}

// NewQuery trims and case-folds s, keeping the original for logging.
func NewQuery(s string) Query {
	raw := strings.TrimSpace(s)
	return Query{
		Raw:        raw,
		Normalized: strings.ToLower(raw),
	}
}

// Empty reports whether the query has no usable content.
func (q Query) Empty() bool {
	return q.Normalized == ""
}
