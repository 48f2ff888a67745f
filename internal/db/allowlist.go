package db

import (
	"fmt"
	"strings"
)

// Record visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// AllowListQuery selects the records a user may read.
// Every non-empty list narrows the result; empty lists do not filter.
type AllowListQuery struct {
	UserID      int64
	Collections []int64 // any-of
	Tags        []string
	AllTags     bool // record must carry every tag instead of any
	RecordTypes []string
	Mimetypes   []string
	// HidePublic drops records readable only because they are public.
	HidePublic bool
}

// RecordRow is the access and filter metadata of one record.
type RecordRow struct {
	ID          int64
	Type        string
	Visibility  string
	Readers     []int64
	Tags        []string
	Collections []int64
	Mimetypes   []string
}

// Public reports whether every user may read the record.
func (r *RecordRow) Public() bool { return r.Visibility == VisibilityPublic }

// Validate checks that the row can be stored.
func (r *RecordRow) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidRecord)
	}
	switch r.Visibility {
	case "":
		r.Visibility = VisibilityPrivate
	case VisibilityPrivate, VisibilityPublic:
	default:
		return fmt.Errorf("%w: unknown visibility %q", ErrInvalidRecord, r.Visibility)
	}
	for _, uid := range r.Readers {
		if uid <= 0 {
			return fmt.Errorf("%w: reader id must be positive", ErrInvalidRecord)
		}
	}
	for _, cid := range r.Collections {
		if cid <= 0 {
			return fmt.Errorf("%w: collection id must be positive", ErrInvalidRecord)
		}
	}
	for _, t := range r.Tags {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty tag", ErrInvalidRecord)
		}
	}
	return nil
}
