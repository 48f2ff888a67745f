package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/recdex/internal/domain/search/extras"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/request"
)

func newRequest(t *testing.T, text string, preds ...extras.Predicate) *request.Request {
	t.Helper()
	req, err := request.New(text, preds, filter.Filters{}, "", 0, 0, request.Limits{})
	require.NoError(t, err)
	return &req
}

func keyPred(link extras.Link, key string) extras.Predicate {
	return extras.Predicate{Link: link, Kind: extras.Bool, Key: key}
}

func leafOf(key string) query.Node {
	return compileLeaf(extras.Predicate{Kind: extras.Bool, Key: key})
}

func TestCompile_MatchAllWhenEmpty(t *testing.T) {
	got := Compile(newRequest(t, ""))

	assert.Equal(t, query.MatchAll{}, got.Query)
	assert.Nil(t, got.FilterIDs)
	assert.Equal(t, request.SortRelevance, got.Sort)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, request.DefaultPerPage, got.PerPage)
}

func TestCompile_TextOnly(t *testing.T) {
	got := Compile(newRequest(t, "thermal"))

	assert.Equal(t, query.MultiMatch{
		Fields:    []string{"identifier", "title", "plain_description"},
		Query:     "thermal",
		Fuzziness: query.FuzzinessAuto,
	}, got.Query)
}

func TestCompile_TextAndExtras(t *testing.T) {
	got := Compile(newRequest(t, "thermal", keyPred(extras.And, "a")))

	b, ok := got.Query.(query.Bool)
	require.True(t, ok)
	require.Len(t, b.Must, 2)
	assert.IsType(t, query.MultiMatch{}, b.Must[0])
	assert.Equal(t, query.Bool{Should: []query.Node{
		query.Bool{Must: []query.Node{leafOf("a")}},
	}}, b.Must[1])
}

func TestCompile_UnconstrainedExtrasFallBackToMatchAll(t *testing.T) {
	got := Compile(newRequest(t, "", extras.Predicate{Kind: extras.Str}, extras.Predicate{Link: extras.Or}))
	assert.Equal(t, query.MatchAll{}, got.Query)
}

func TestCombine(t *testing.T) {
	a, b, c, d := leafOf("a"), leafOf("b"), leafOf("c"), leafOf("d")

	tests := []struct {
		name  string
		preds []extras.Predicate
		want  query.Node
	}{
		{
			name:  "single",
			preds: []extras.Predicate{keyPred(extras.And, "a")},
			want:  query.Bool{Should: []query.Node{query.Bool{Must: []query.Node{a}}}},
		},
		{
			name:  "all and",
			preds: []extras.Predicate{keyPred(extras.And, "a"), keyPred(extras.And, "b"), keyPred(extras.And, "c")},
			want:  query.Bool{Should: []query.Node{query.Bool{Must: []query.Node{a, b, c}}}},
		},
		{
			name: "and or and",
			preds: []extras.Predicate{
				keyPred(extras.And, "a"), keyPred(extras.And, "b"),
				keyPred(extras.Or, "c"), keyPred(extras.And, "d"),
			},
			want: query.Bool{Should: []query.Node{
				query.Bool{Must: []query.Node{a, b}},
				query.Bool{Must: []query.Node{c, d}},
			}},
		},
		{
			name:  "first or is ignored",
			preds: []extras.Predicate{keyPred(extras.Or, "a"), keyPred(extras.And, "b")},
			want:  query.Bool{Should: []query.Node{query.Bool{Must: []query.Node{a, b}}}},
		},
		{
			name:  "all or",
			preds: []extras.Predicate{keyPred(extras.Or, "a"), keyPred(extras.Or, "b"), keyPred(extras.Or, "c")},
			want: query.Bool{Should: []query.Node{
				query.Bool{Must: []query.Node{a}},
				query.Bool{Must: []query.Node{b}},
				query.Bool{Must: []query.Node{c}},
			}},
		},
		{
			name: "empty leaf does not seal",
			preds: []extras.Predicate{
				keyPred(extras.And, "a"),
				{Link: extras.Or, Kind: extras.Str},
				keyPred(extras.And, "b"),
			},
			want: query.Bool{Should: []query.Node{query.Bool{Must: []query.Node{a, b}}}},
		},
		{
			name: "or after empty leading leaf",
			preds: []extras.Predicate{
				{Kind: extras.Date},
				keyPred(extras.Or, "a"),
				keyPred(extras.Or, "b"),
			},
			want: query.Bool{Should: []query.Node{
				query.Bool{Must: []query.Node{a}},
				query.Bool{Must: []query.Node{b}},
			}},
		},
		{
			name:  "nothing",
			preds: []extras.Predicate{{}, {Link: extras.Or, Kind: extras.Numeric}},
			want:  nil,
		},
		{
			name:  "no predicates",
			preds: nil,
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combine(tt.preds))
		})
	}
}

// The number of conjunctions is one more than the number of sealing "or" links.
func TestCombine_ConjunctionCount(t *testing.T) {
	links := [][]extras.Link{
		{extras.And},
		{extras.Or},
		{extras.And, extras.Or},
		{extras.And, extras.Or, extras.Or, extras.And},
		{extras.Or, extras.And, extras.Or, extras.And, extras.Or},
	}
	for _, ls := range links {
		preds := make([]extras.Predicate, len(ls))
		seals := 0
		for i, l := range ls {
			preds[i] = keyPred(l, "k")
			if i > 0 && l == extras.Or {
				seals++
			}
		}
		got, ok := combine(preds).(query.Bool)
		require.True(t, ok)
		assert.Len(t, got.Should, seals+1, "links %v", ls)

		total := 0
		for _, conj := range got.Should {
			total += len(conj.(query.Bool).Must)
		}
		assert.Equal(t, len(ls), total)
	}
}

func TestCompile_CarriesPaging(t *testing.T) {
	req, err := request.New("", nil, filter.Filters{}, "-created_at", 3, 25, request.Limits{})
	require.NoError(t, err)

	got := Compile(&req)
	assert.Equal(t, "-created_at", got.Sort)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 25, got.PerPage)
	assert.Equal(t, 50, got.From())
}
