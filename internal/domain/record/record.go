package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/extra"
)

// Field limits.
const (
	MaxIdentifierLen  = 256
	MaxTitleLen       = 1024
	MaxDescriptionLen = 163840 // 160KB
)

// Params are the raw fields of a record before validation.
type Params struct {
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
	Extras           []extra.Extra
	CreatedAt        time.Time
}

// Record is the record aggregate (immutable value object).
type Record struct {
	id               int64
	identifier       string
	title            string
	plainDescription string
	recordType       string
	public           bool
	readers          []int64
	tags             []string
	collections      []int64
	mimetypes        []string
	extras           []extra.Extra
	createdAt        time.Time
}

// New validates p and creates a Record. Extras are normalized; all extras
// failures come back in one *domain.ValidationError.
func New(p Params) (Record, error) {
	verr := &domain.ValidationError{}

	if p.ID <= 0 {
		verr.Add(-1, "id", domain.ErrInvalidValue, "id must be positive")
	}
	identifier := strings.TrimSpace(p.Identifier)
	switch {
	case identifier == "":
		verr.Add(-1, "identifier", domain.ErrInvalidPayload, "identifier is required")
	case len(identifier) > MaxIdentifierLen:
		verr.Add(-1, "identifier", domain.ErrInvalidValue, "identifier too long (max %d)", MaxIdentifierLen)
	}
	if len(p.Title) > MaxTitleLen {
		verr.Add(-1, "title", domain.ErrInvalidValue, "title too long (max %d)", MaxTitleLen)
	}
	if len(p.PlainDescription) > MaxDescriptionLen {
		verr.Add(-1, "plain_description", domain.ErrInvalidValue,
			"plain_description too large (max %d bytes)", MaxDescriptionLen)
	}

	extras, err := extra.Normalize(p.Extras)
	if err != nil {
		var extrasErr *domain.ValidationError
		if !errors.As(err, &extrasErr) {
			return Record{}, fmt.Errorf("normalize extras: %w", err)
		}
		verr.Merge(extrasErr)
	}

	verr.Sort()
	if err := verr.Err(); err != nil {
		return Record{}, err
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return Record{
		id:               p.ID,
		identifier:       identifier,
		title:            p.Title,
		plainDescription: p.PlainDescription,
		recordType:       strings.TrimSpace(p.Type),
		public:           p.Public,
		readers:          append([]int64(nil), p.Readers...),
		tags:             trimAll(p.Tags),
		collections:      append([]int64(nil), p.Collections...),
		mimetypes:        trimAll(p.Mimetypes),
		extras:           extras,
		createdAt:        createdAt.UTC(),
	}, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ID returns the record identifier.
func (r *Record) ID() int64 { return r.id }

// Identifier returns the human-readable identifier.
func (r *Record) Identifier() string { return r.identifier }

// Title returns the record title.
func (r *Record) Title() string { return r.title }

// PlainDescription returns the description without markup.
func (r *Record) PlainDescription() string { return r.plainDescription }

// Type returns the record type.
func (r *Record) Type() string { return r.recordType }

// Public reports whether every user may read the record.
func (r *Record) Public() bool { return r.public }

// Readers returns the users explicitly granted read access.
func (r *Record) Readers() []int64 { return r.readers }

// Tags returns the record tags.
func (r *Record) Tags() []string { return r.tags }

// Collections returns the collections containing the record.
func (r *Record) Collections() []int64 { return r.collections }

// Mimetypes returns the mimetypes of the attached files.
func (r *Record) Mimetypes() []string { return r.mimetypes }

// Extras returns the normalized extras.
func (r *Record) Extras() []extra.Extra { return r.extras }

// CreatedAt returns the creation time in UTC.
func (r *Record) CreatedAt() time.Time { return r.createdAt }
