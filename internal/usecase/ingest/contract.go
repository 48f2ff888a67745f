package ingest

import (
	"context"

	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
)

// Store persists the access and filter metadata of a record.
type Store interface {
	Save(ctx context.Context, rec *domrec.Record) error
}

// Indexer writes the searchable document of a record.
type Indexer interface {
	IndexRecord(ctx context.Context, rec *domrec.Record) error
}
