// Package query defines the index query tree produced by the extras compiler.
// Nodes encode to the Elasticsearch query DSL.
package query

import "encoding/json"

// Node is a single query tree node.
type Node interface {
	json.Marshaler
	node()
}

// Fuzziness values for MultiMatch.
const FuzzinessAuto = "AUTO"

// MatchAll matches every document.
type MatchAll struct{}

// Match is an analyzed (fuzzy) full-text match on one field.
type Match struct {
	Field string
	Query string
}

// Term is an exact, non-analyzed equality check.
type Term struct {
	Field string
	Value any
}

// Range is an open interval. Empty bounds are absent.
// Bounds stay strings so the index performs the numeric or date cast.
type Range struct {
	Field string
	GT    string
	LT    string
}

// MultiMatch is a fuzzy full-text match across several fields.
type MultiMatch struct {
	Fields    []string
	Query     string
	Fuzziness string
}

// Nested scopes Query to the nested documents under Path.
type Nested struct {
	Path  string
	Query Node
}

// Bool combines clauses. An empty Bool matches everything.
type Bool struct {
	Must    []Node
	Should  []Node
	MustNot []Node
	Filter  []Node
}

func (MatchAll) node()   {}
func (Match) node()      {}
func (Term) node()       {}
func (Range) node()      {}
func (MultiMatch) node() {}
func (Nested) node()     {}
func (Bool) node()       {}

// IsEmpty reports whether the Bool has no clauses.
func (b Bool) IsEmpty() bool {
	return len(b.Must) == 0 && len(b.Should) == 0 && len(b.MustNot) == 0 && len(b.Filter) == 0
}

// MarshalJSON implements json.Marshaler.
func (MatchAll) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"match_all": map[string]any{}})
}

// MarshalJSON implements json.Marshaler.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"match": map[string]any{m.Field: m.Query}})
}

// MarshalJSON implements json.Marshaler.
func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"term": map[string]any{t.Field: t.Value}})
}

// MarshalJSON implements json.Marshaler.
func (r Range) MarshalJSON() ([]byte, error) {
	bounds := map[string]any{}
	if r.GT != "" {
		bounds["gt"] = r.GT
	}
	if r.LT != "" {
		bounds["lt"] = r.LT
	}
	return json.Marshal(map[string]any{"range": map[string]any{r.Field: bounds}})
}

// MarshalJSON implements json.Marshaler.
func (m MultiMatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"query":  m.Query,
		"fields": m.Fields,
	}
	if m.Fuzziness != "" {
		body["fuzziness"] = m.Fuzziness
	}
	return json.Marshal(map[string]any{"multi_match": body})
}

// MarshalJSON implements json.Marshaler.
func (n Nested) MarshalJSON() ([]byte, error) {
	inner := n.Query
	if inner == nil {
		inner = MatchAll{}
	}
	return json.Marshal(map[string]any{"nested": map[string]any{
		"path":  n.Path,
		"query": inner,
	}})
}

// MarshalJSON implements json.Marshaler.
func (b Bool) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	for name, clauses := range map[string][]Node{
		"must":     b.Must,
		"should":   b.Should,
		"must_not": b.MustNot,
		"filter":   b.Filter,
	} {
		if len(clauses) > 0 {
			body[name] = clauses
		}
	}
	return json.Marshal(map[string]any{"bool": body})
}
