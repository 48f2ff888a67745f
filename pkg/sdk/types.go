package recdex

import (
	"time"

	"github.com/kailas-cloud/recdex/internal/domain/extra"
)

// Extra is one typed metadata entry of a record.
type Extra = extra.Extra

// ExtraType is the declared type of an Extra.
type ExtraType = extra.Type

// Extra type constants.
const (
	ExtraStr   = extra.Str
	ExtraInt   = extra.Int
	ExtraFloat = extra.Float
	ExtraBool  = extra.Bool
	ExtraDate  = extra.Date
	ExtraDict  = extra.Dict
	ExtraList  = extra.List
)

// Record is a searchable record with its access metadata.
// Readers are the user ids granted read access; Public records are
// readable by everyone.
type Record struct {
	ID               int64
	Identifier       string
	Title            string
	PlainDescription string
	Type             string
	Public           bool
	Readers          []int64
	Tags             []string
	Collections      []int64
	Mimetypes        []string
	Extras           []Extra
	CreatedAt        time.Time
}

// Query is a record search. Extras predicates are joined by their links.
type Query struct {
	Text    string
	Extras  []Predicate
	Filters *Filters
	Sort    string
	Page    int
	PerPage int
}

// Filters are coarse restrictions evaluated by the permission store.
// TagOperator is "or" (default) or "and".
type Filters struct {
	Collections []int64
	Tags        []string
	TagOperator string
	RecordTypes []string
	Mimetypes   []string
	HidePublic  bool
}

// Hit is a single search result.
type Hit struct {
	ID         int64
	Score      float64
	Identifier string
	Title      string
}

// Page is one page of search results.
type Page struct {
	Items   []Hit
	Total   int
	Page    int
	PerPage int
	Pages   int
}

// BatchResult is the outcome of one record in an Ingest call.
type BatchResult struct {
	Position int
	ID       int64
	OK       bool
	Err      error
}
