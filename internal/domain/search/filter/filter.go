package filter

import (
	"fmt"
	"strings"
)

// MaxValuesPerFilter is the maximum number of values per coarse filter list.
const MaxValuesPerFilter = 64

// Operator combines the values of a multi-valued filter.
type Operator string

// Operator constants.
const (
	// AnyOf keeps records matching at least one value.
	AnyOf Operator = "or"
	// AllOf keeps records matching every value.
	AllOf Operator = "and"
)

// IsValid reports whether o is a known operator.
func (o Operator) IsValid() bool { return o == AnyOf || o == AllOf }

// Filters are the coarse, store-evaluated restrictions of a search.
// Within one list values are alternatives (tags honor TagOperator);
// different lists are combined with AND.
type Filters struct {
	collections []int64
	tags        []string
	tagOperator Operator
	recordTypes []string
	mimetypes   []string
	hidePublic  bool
}

// New validates and creates Filters. Blank and duplicate values are dropped.
func New(
	collections []int64,
	tags []string, tagOperator Operator,
	recordTypes, mimetypes []string,
	hidePublic bool,
) (Filters, error) {
	if tagOperator == "" {
		tagOperator = AnyOf
	}
	if !tagOperator.IsValid() {
		return Filters{}, fmt.Errorf("invalid tag operator %q", tagOperator)
	}

	f := Filters{
		collections: dedupIDs(collections),
		tags:        dedup(tags),
		tagOperator: tagOperator,
		recordTypes: dedup(recordTypes),
		mimetypes:   dedup(mimetypes),
		hidePublic:  hidePublic,
	}

	for name, n := range map[string]int{
		"collections":  len(f.collections),
		"tags":         len(f.tags),
		"record types": len(f.recordTypes),
		"mimetypes":    len(f.mimetypes),
	} {
		if n > MaxValuesPerFilter {
			return Filters{}, fmt.Errorf("too many %s (max %d)", name, MaxValuesPerFilter)
		}
	}
	for _, id := range f.collections {
		if id <= 0 {
			return Filters{}, fmt.Errorf("invalid collection id %d", id)
		}
	}
	return f, nil
}

// Collections returns the collection ids a record must belong to (any of).
func (f Filters) Collections() []int64 { return f.collections }

// Tags returns the tag names.
func (f Filters) Tags() []string { return f.tags }

// TagOperator returns how tags are combined.
func (f Filters) TagOperator() Operator {
	if f.tagOperator == "" {
		return AnyOf
	}
	return f.tagOperator
}

// RecordTypes returns the accepted record types.
func (f Filters) RecordTypes() []string { return f.recordTypes }

// Mimetypes returns the accepted MIME types of attached files.
func (f Filters) Mimetypes() []string { return f.mimetypes }

// HidePublic reports whether records with public visibility are excluded.
func (f Filters) HidePublic() bool { return f.hidePublic }

// IsEmpty reports whether no coarse restriction is set.
func (f Filters) IsEmpty() bool {
	return len(f.collections) == 0 && len(f.tags) == 0 &&
		len(f.recordTypes) == 0 && len(f.mimetypes) == 0 && !f.hidePublic
}

func dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func dedupIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
