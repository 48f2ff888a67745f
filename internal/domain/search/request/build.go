package request

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/search/extras"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// FilterInput holds the raw coarse filter fields of a search.
type FilterInput struct {
	Collections []int64
	Tags        []string
	TagOperator string
	RecordTypes []string
	Mimetypes   []string
	HidePublic  bool
}

// Input is a search as received from a client, before validation.
// Extras is the DSL payload (a JSON array of predicates).
type Input struct {
	Text    string
	Extras  []byte
	Filters *FilterInput
	Sort    string
	Page    int
	PerPage int
}

// Build parses the DSL and the filters of in, validates the rest of the
// request, and reports every failure together in one *domain.ValidationError,
// ordered by index.
func Build(in *Input, limits Limits) (Request, error) {
	verr := &domain.ValidationError{}

	preds, err := extras.Parse(in.Extras)
	if err != nil {
		var perr *domain.ValidationError
		if !errors.As(err, &perr) {
			return Request{}, fmt.Errorf("parse extras: %w", err)
		}
		verr.Merge(perr)
	}

	var filters filter.Filters
	if f := in.Filters; f != nil {
		filters, err = filter.New(
			f.Collections,
			f.Tags, filter.Operator(f.TagOperator),
			f.RecordTypes, f.Mimetypes,
			f.HidePublic,
		)
		if err != nil {
			verr.Add(-1, "filters", domain.ErrInvalidValue, "%s", err.Error())
		}
	}

	req, err := New(in.Text, preds, filters, in.Sort, in.Page, in.PerPage, limits)
	if err != nil {
		var rerr *domain.ValidationError
		if !errors.As(err, &rerr) {
			return Request{}, fmt.Errorf("build search request: %w", err)
		}
		verr.Merge(rerr)
	}

	verr.Sort()
	if err := verr.Err(); err != nil {
		return Request{}, err
	}
	return req, nil
}
