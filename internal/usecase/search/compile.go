package search

import (
	"github.com/kailas-cloud/recdex/internal/domain/search/extras"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/request"
)

// TextFields are the record fields searched by the free-text query.
var TextFields = []string{"identifier", "title", "plain_description"}

// Compile builds the index query for req. It is pure; the allow-list is
// attached by the caller through FilterIDs.
func Compile(req *request.Request) query.Search {
	var text query.Node
	if req.Text() != "" {
		text = query.MultiMatch{
			Fields:    TextFields,
			Query:     req.Text(),
			Fuzziness: query.FuzzinessAuto,
		}
	}
	extrasQuery := combine(req.Extras())

	var q query.Node
	switch {
	case text != nil && extrasQuery != nil:
		q = query.Bool{Must: []query.Node{text, extrasQuery}}
	case text != nil:
		q = text
	case extrasQuery != nil:
		q = extrasQuery
	default:
		q = query.MatchAll{}
	}

	return query.Search{
		Query:   q,
		Sort:    req.Sort(),
		Page:    req.Page(),
		PerPage: req.PerPage(),
	}
}

// combine joins leaves by the flat link grammar into a disjunction of
// conjunctions. "or" seals the running conjunction; the link of the first
// contributing predicate is ignored. Empty leaves neither join nor seal.
// It returns nil when no predicate constrains anything.
func combine(preds []extras.Predicate) query.Node {
	var (
		sealed  []query.Node
		current []query.Node
	)
	for _, p := range preds {
		leaf := compileLeaf(p)
		if leaf == nil {
			continue
		}
		if p.Link == extras.Or && len(current) > 0 {
			sealed = append(sealed, query.Bool{Must: current})
			current = nil
		}
		current = append(current, leaf)
	}
	if len(current) > 0 {
		sealed = append(sealed, query.Bool{Must: current})
	}
	if len(sealed) == 0 {
		return nil
	}
	return query.Bool{Should: sealed}
}
