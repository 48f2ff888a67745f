package query

import (
	"encoding/json"
	"strings"
)

// IDField is the record identifier field used for the allow-list filter.
const IDField = "id"

// Search is a compiled query with its allow-list and paging attached.
type Search struct {
	Query Node
	// FilterIDs restricts hits to these records. Nil means unrestricted.
	FilterIDs []int64
	Sort      string
	Page      int
	PerPage   int
}

// From returns the offset of the first hit.
func (s *Search) From() int {
	if s.Page <= 1 {
		return 0
	}
	return (s.Page - 1) * s.PerPage
}

// Body builds the request body sent to the index.
func (s *Search) Body() map[string]any {
	q := s.Query
	if q == nil {
		q = MatchAll{}
	}
	if s.FilterIDs != nil {
		q = Bool{
			Must:   []Node{q},
			Filter: []Node{Terms{Field: IDField, Values: s.FilterIDs}},
		}
	}

	body := map[string]any{
		"query": q,
		"from":  s.From(),
		"size":  s.PerPage,
	}
	if sort := sortClause(s.Sort); sort != nil {
		body["sort"] = sort
	}
	return body
}

// MarshalJSON implements json.Marshaler.
func (s *Search) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Body())
}

// sortClause maps "field" to ascending and "-field" to descending order.
// Relevance sorting needs no clause.
func sortClause(key string) []any {
	if key == "" || key == "_score" {
		return nil
	}
	order := "asc"
	if strings.HasPrefix(key, "-") {
		order = "desc"
		key = key[1:]
	}
	return []any{
		map[string]any{key: map[string]any{"order": order}},
		"_score",
	}
}

// Terms matches any of several exact values.
type Terms struct {
	Field  string
	Values []int64
}

func (Terms) node() {}

// MarshalJSON implements json.Marshaler.
func (t Terms) MarshalJSON() ([]byte, error) {
	values := t.Values
	if values == nil {
		values = []int64{}
	}
	return json.Marshal(map[string]any{"terms": map[string]any{t.Field: values}})
}
