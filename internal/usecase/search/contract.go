package search

import (
	"context"

	"github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/result"
)

// Store provides the coarse allow-list of readable records.
type Store interface {
	ReadableRecordIDs(ctx context.Context, userID int64, filters filter.Filters) (record.IDSet, error)
}

// Index executes compiled queries against the full-text index.
type Index interface {
	Search(ctx context.Context, q *query.Search) (result.Page, error)
}
