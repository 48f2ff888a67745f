package search

import (
	"github.com/kailas-cloud/recdex/internal/domain/extra"
	"github.com/kailas-cloud/recdex/internal/domain/search/extras"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/token"
)

// Fields inside every partition document.
const (
	fieldKey          = "key"
	fieldKeyKeyword   = "key.keyword"
	fieldValue        = "value"
	fieldValueKeyword = "value.keyword"
	fieldUnit         = "unit"
)

// compileLeaf turns one predicate into a nested subquery.
// It returns nil when the predicate constrains nothing.
func compileLeaf(p extras.Predicate) query.Node {
	key, keyExact := token.String(p.Key)

	switch p.Kind {
	case extras.Str:
		return strLeaf(p.Str, key, keyExact)
	case extras.Numeric:
		return numericLeaf(p.Numeric, key, keyExact)
	case extras.Bool:
		return boolLeaf(p.Bool, key, keyExact)
	case extras.Date:
		return dateLeaf(p.Date, key, keyExact)
	}
	return anyLeaf(key, keyExact)
}

func strLeaf(raw, key string, keyExact bool) query.Node {
	p := extra.PartitionStr
	var must []query.Node

	if text, exact := token.String(raw); text != "" {
		must = append(must, matchOrTerm(p.Field(fieldValue), p.Field(fieldValueKeyword), text, exact))
	}
	if key != "" {
		must = append(must, keyClause(p, key, keyExact))
	}
	return nested(p, must)
}

func numericLeaf(r extras.NumericRange, key string, keyExact bool) query.Node {
	var should []query.Node
	for _, p := range []extra.Partition{extra.PartitionInt, extra.PartitionFloat} {
		var must []query.Node
		if r.Min != "" || r.Max != "" {
			must = append(must, query.Range{Field: p.Field(fieldValue), GT: r.Min, LT: r.Max})
		}
		if r.Unit != "" {
			must = append(must, query.Match{Field: p.Field(fieldUnit), Query: r.Unit})
		}
		if key != "" {
			must = append(must, keyClause(p, key, keyExact))
		}
		if len(must) == 0 {
			return nil
		}
		should = append(should, query.Nested{Path: string(p), Query: query.Bool{Must: must}})
	}
	return query.Bool{Should: should}
}

func boolLeaf(raw, key string, keyExact bool) query.Node {
	p := extra.PartitionBool
	var must []query.Node

	if value, ok := token.Bool(raw); ok {
		must = append(must, query.Term{Field: p.Field(fieldValue), Value: value})
	}
	if key != "" {
		must = append(must, keyClause(p, key, keyExact))
	}
	return nested(p, must)
}

func dateLeaf(r extras.DateRange, key string, keyExact bool) query.Node {
	p := extra.PartitionDate
	var must []query.Node

	if r.Min != "" || r.Max != "" {
		must = append(must, query.Range{Field: p.Field(fieldValue), GT: r.Min, LT: r.Max})
	}
	if key != "" {
		must = append(must, keyClause(p, key, keyExact))
	}
	return nested(p, must)
}

// anyLeaf asks whether any scalar extra carries the key.
func anyLeaf(key string, keyExact bool) query.Node {
	if key == "" {
		return nil
	}
	should := make([]query.Node, 0, len(extra.Partitions))
	for _, p := range extra.Partitions {
		should = append(should, query.Nested{Path: string(p), Query: keyClause(p, key, keyExact)})
	}
	return query.Bool{Should: should}
}

// keyClause matches the key of partition p, fuzzily unless exact.
// Keys are opaque: dotted paths of nested extras are matched as-is.
func keyClause(p extra.Partition, key string, exact bool) query.Node {
	var should []query.Node
	if !exact {
		should = append(should, query.Match{Field: p.Field(fieldKey), Query: key})
	}
	should = append(should, query.Term{Field: p.Field(fieldKeyKeyword), Value: key})
	return query.Bool{Should: should}
}

func matchOrTerm(field, keywordField, text string, exact bool) query.Node {
	term := query.Term{Field: keywordField, Value: text}
	if exact {
		return term
	}
	return query.Bool{Should: []query.Node{query.Match{Field: field, Query: text}, term}}
}

func nested(p extra.Partition, must []query.Node) query.Node {
	if len(must) == 0 {
		return nil
	}
	return query.Nested{Path: string(p), Query: query.Bool{Must: must}}
}
