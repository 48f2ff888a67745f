package query

import (
	"encoding/json"
	"testing"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"match_all", MatchAll{}, `{"match_all":{}}`},
		{"match", Match{Field: "extras_str.key", Query: "mat"}, `{"match":{"extras_str.key":"mat"}}`},
		{"term bool", Term{Field: "extras_bool.value", Value: true}, `{"term":{"extras_bool.value":true}}`},
		{"range both", Range{Field: "extras_int.value", GT: "0", LT: "1"},
			`{"range":{"extras_int.value":{"gt":"0","lt":"1"}}}`},
		{"range min", Range{Field: "extras_int.value", GT: "5"}, `{"range":{"extras_int.value":{"gt":"5"}}}`},
		{"multi_match", MultiMatch{Fields: []string{"title"}, Query: "x", Fuzziness: FuzzinessAuto},
			`{"multi_match":{"fields":["title"],"fuzziness":"AUTO","query":"x"}}`},
		{"nested nil", Nested{Path: "extras_str"}, `{"nested":{"path":"extras_str","query":{"match_all":{}}}}`},
		{"empty bool", Bool{}, `{"bool":{}}`},
		{"bool", Bool{Must: []Node{MatchAll{}}, Should: []Node{Term{Field: "a", Value: "b"}}},
			`{"bool":{"must":[{"match_all":{}}],"should":[{"term":{"a":"b"}}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.node)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBool_IsEmpty(t *testing.T) {
	if !(Bool{}).IsEmpty() {
		t.Error("zero Bool should be empty")
	}
	if (Bool{Filter: []Node{MatchAll{}}}).IsEmpty() {
		t.Error("Bool with filter is not empty")
	}
}

func TestSearch_Body(t *testing.T) {
	s := &Search{
		Query:     Match{Field: "title", Query: "x"},
		FilterIDs: []int64{1, 2},
		Sort:      "-created_at",
		Page:      3,
		PerPage:   10,
	}
	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"from":20,"query":{"bool":{"filter":[{"terms":{"id":[1,2]}}],"must":[{"match":{"title":"x"}}]}},` +
		`"size":10,"sort":[{"created_at":{"order":"desc"}},"_score"]}`
	if string(got) != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestSearch_BodyUnrestricted(t *testing.T) {
	s := &Search{Sort: "_score", Page: 1, PerPage: 5}
	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"from":0,"query":{"match_all":{}},"size":5}`
	if string(got) != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}
