package chi

import (
	"encoding/json"
	"errors"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/search/request"
	"github.com/kailas-cloud/recdex/internal/domain/search/result"
)

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// Error codes.
const (
	codeBadRequest       ErrorResponseCode = "bad_request"
	codeValidationFailed ErrorResponseCode = "validation_failed"
	codeUnauthorized     ErrorResponseCode = "unauthorized"
	codeDependencyError  ErrorResponseCode = "dependency_error"
	codeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Errors  []FieldErrorItem  `json:"errors,omitempty"`
}

// FieldErrorItem is one validation failure. Index is -1 for request-level fields.
type FieldErrorItem struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SearchFilters is the coarse filter block of a search request.
type SearchFilters struct {
	Collections []int64  `json:"collections,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	TagOperator string   `json:"tag_operator,omitempty"`
	RecordTypes []string `json:"record_types,omitempty"`
	Mimetypes   []string `json:"mimetypes,omitempty"`
	HidePublic  bool     `json:"hide_public,omitempty"`
}

// SearchRequest is the body of POST /records/search.
// Extras stays raw so the DSL parser reports positions of bad predicates.
type SearchRequest struct {
	Text    string          `json:"text"`
	Extras  json.RawMessage `json:"extras,omitempty"`
	Filters *SearchFilters  `json:"filters,omitempty"`
	Sort    string          `json:"sort,omitempty"`
	Page    int             `json:"page,omitempty"`
	PerPage int             `json:"per_page,omitempty"`
}

// ToRequest validates the DSL, the filters and the paging of b and reports
// all failures together.
func (b *SearchRequest) ToRequest(limits request.Limits) (request.Request, error) {
	in := &request.Input{
		Text:    b.Text,
		Extras:  b.Extras,
		Sort:    b.Sort,
		Page:    b.Page,
		PerPage: b.PerPage,
	}
	if f := b.Filters; f != nil {
		in.Filters = &request.FilterInput{
			Collections: f.Collections,
			Tags:        f.Tags,
			TagOperator: f.TagOperator,
			RecordTypes: f.RecordTypes,
			Mimetypes:   f.Mimetypes,
			HidePublic:  f.HidePublic,
		}
	}
	return request.Build(in, limits)
}

// SearchHit is one record of a result page.
type SearchHit struct {
	ID         int64   `json:"id"`
	Score      float64 `json:"score"`
	Identifier string  `json:"identifier"`
	Title      string  `json:"title"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Items   []SearchHit `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Pages   int         `json:"pages"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func pageToResponse(p *result.Page) SearchResponse {
	items := make([]SearchHit, 0, len(p.Items()))
	for _, h := range p.Items() {
		items = append(items, SearchHit{
			ID:         h.ID(),
			Score:      h.Score(),
			Identifier: h.Identifier(),
			Title:      h.Title(),
		})
	}
	return SearchResponse{
		Items:   items,
		Total:   p.Total(),
		Page:    p.Page(),
		PerPage: p.PerPage(),
		Pages:   p.Pages(),
	}
}

func fieldErrorsToResponse(verr *domain.ValidationError) []FieldErrorItem {
	items := make([]FieldErrorItem, len(verr.Fields))
	for i, f := range verr.Fields {
		items[i] = FieldErrorItem{
			Index:   f.Index,
			Field:   f.Field,
			Kind:    kindName(f.Kind),
			Message: f.Message,
		}
	}
	return items
}

func kindName(kind error) string {
	switch {
	case errors.Is(kind, domain.ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(kind, domain.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(kind, domain.ErrInvalidCombination):
		return "invalid_combination"
	default:
		return "invalid"
	}
}
