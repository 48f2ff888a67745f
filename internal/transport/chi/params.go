package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// SearchParams are the query parameters of GET /records/search.
// List parameters repeat: ?tag=a&tag=b.
type SearchParams struct {
	Q           *string   `form:"q,omitempty" json:"q,omitempty"`
	Extras      *string   `form:"extras,omitempty" json:"extras,omitempty"`
	Collection  *[]int64  `form:"collection,omitempty" json:"collection,omitempty"`
	Tag         *[]string `form:"tag,omitempty" json:"tag,omitempty"`
	TagOperator *string   `form:"tag_operator,omitempty" json:"tag_operator,omitempty"`
	Type        *[]string `form:"type,omitempty" json:"type,omitempty"`
	Mimetype    *[]string `form:"mimetype,omitempty" json:"mimetype,omitempty"`
	HidePublic  *bool     `form:"hide_public,omitempty" json:"hide_public,omitempty"`
	Sort        *string   `form:"sort,omitempty" json:"sort,omitempty"`
	Page        *int      `form:"page,omitempty" json:"page,omitempty"`
	PerPage     *int      `form:"per_page,omitempty" json:"per_page,omitempty"`
}

// bindSearchParams decodes the query string the way generated oapi-codegen
// wrappers do: form style, exploded, all optional.
func bindSearchParams(r *http.Request) (SearchParams, error) {
	var params SearchParams
	query := r.URL.Query()

	binds := []struct {
		name string
		dest any
	}{
		{"q", &params.Q},
		{"extras", &params.Extras},
		{"collection", &params.Collection},
		{"tag", &params.Tag},
		{"tag_operator", &params.TagOperator},
		{"type", &params.Type},
		{"mimetype", &params.Mimetype},
		{"hide_public", &params.HidePublic},
		{"sort", &params.Sort},
		{"page", &params.Page},
		{"per_page", &params.PerPage},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return params, nil
}

// toSearchRequest maps query parameters onto the POST body shape.
func (p *SearchParams) toSearchRequest() SearchRequest {
	req := SearchRequest{
		Text:    deref(p.Q),
		Sort:    deref(p.Sort),
		Page:    deref(p.Page),
		PerPage: deref(p.PerPage),
	}
	if p.Extras != nil {
		req.Extras = []byte(*p.Extras)
	}

	f := SearchFilters{
		Collections: deref(p.Collection),
		Tags:        deref(p.Tag),
		TagOperator: deref(p.TagOperator),
		RecordTypes: deref(p.Type),
		Mimetypes:   deref(p.Mimetype),
		HidePublic:  deref(p.HidePublic),
	}
	req.Filters = &f
	return req
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
