package request

import (
	"regexp"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/search/extras"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxTextLength is the maximum allowed free-text query length.
	MaxTextLength  = 4096
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// SortRelevance orders hits by index score.
const SortRelevance = "_score"

var sortPattern = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_.]*$`)

// Limits overrides the paging defaults. Zero fields keep the package defaults.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
}

// Request is a validated record search.
type Request struct {
	text    string
	extras  []extras.Predicate
	filters filter.Filters
	sort    string
	page    int
	perPage int
}

// New validates and normalizes search parameters.
// page <= 0 becomes 1; perPage <= 0 takes the default and is clamped to the maximum.
func New(
	text string,
	preds []extras.Predicate,
	filters filter.Filters,
	sort string,
	page, perPage int,
	limits Limits,
) (Request, error) {
	verr := &domain.ValidationError{}

	if len([]rune(text)) > MaxTextLength {
		verr.Add(-1, "text", domain.ErrInvalidValue, "text too long (max %d chars)", MaxTextLength)
	}
	if len(preds) > extras.MaxPredicates {
		verr.Add(-1, "extras", domain.ErrInvalidPayload, "too many predicates (max %d)", extras.MaxPredicates)
	}
	if sort == "" {
		sort = SortRelevance
	}
	if sort != SortRelevance && !sortPattern.MatchString(sort) {
		verr.Add(-1, "sort", domain.ErrInvalidValue, "invalid sort key %q", sort)
	}
	if err := verr.Err(); err != nil {
		return Request{}, err
	}

	defPerPage, maxPerPage := DefaultPerPage, MaxPerPage
	if limits.DefaultPerPage > 0 {
		defPerPage = limits.DefaultPerPage
	}
	if limits.MaxPerPage > 0 {
		maxPerPage = limits.MaxPerPage
	}
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Request{
		text:    text,
		extras:  preds,
		filters: filters,
		sort:    sort,
		page:    page,
		perPage: perPage,
	}, nil
}

// Text returns the free-text query.
func (r *Request) Text() string { return r.text }

// Extras returns the extras predicates in DSL order.
func (r *Request) Extras() []extras.Predicate { return r.extras }

// Filters returns the coarse store filters.
func (r *Request) Filters() filter.Filters { return r.filters }

// Sort returns the opaque sort key.
func (r *Request) Sort() string { return r.sort }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PerPage returns the page size.
func (r *Request) PerPage() int { return r.perPage }

// Offset returns the number of hits to skip.
func (r *Request) Offset() int { return (r.page - 1) * r.perPage }
