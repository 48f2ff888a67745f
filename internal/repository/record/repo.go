package record

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/recdex/internal/db"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// store is the consumer interface for record metadata (ISP).
type store interface {
	ReadableRecords(ctx context.Context, q *db.AllowListQuery) ([]int64, error)
	PutRecord(ctx context.Context, row *db.RecordRow) error
}

// Repo implements usecase/search.Store and the metadata half of usecase/ingest.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ReadableRecordIDs returns the allow-list of userID narrowed by the coarse filters.
func (r *Repo) ReadableRecordIDs(ctx context.Context, userID int64, filters filter.Filters) (domrec.IDSet, error) {
	q := &db.AllowListQuery{
		UserID:      userID,
		Collections: filters.Collections(),
		Tags:        filters.Tags(),
		AllTags:     filters.TagOperator() == filter.AllOf,
		RecordTypes: filters.RecordTypes(),
		Mimetypes:   filters.Mimetypes(),
		HidePublic:  filters.HidePublic(),
	}

	ids, err := r.store.ReadableRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("readable records of user %d: %w", userID, err)
	}
	return domrec.NewIDSet(ids...), nil
}

// Save stores the access and filter metadata of rec.
func (r *Repo) Save(ctx context.Context, rec *domrec.Record) error {
	row := toRow(rec)
	if err := r.store.PutRecord(ctx, &row); err != nil {
		return fmt.Errorf("put record %d: %w", rec.ID(), err)
	}
	return nil
}

func toRow(rec *domrec.Record) db.RecordRow {
	visibility := db.VisibilityPrivate
	if rec.Public() {
		visibility = db.VisibilityPublic
	}
	return db.RecordRow{
		ID:          rec.ID(),
		Type:        rec.Type(),
		Visibility:  visibility,
		Readers:     rec.Readers(),
		Tags:        rec.Tags(),
		Collections: rec.Collections(),
		Mimetypes:   rec.Mimetypes(),
	}
}
