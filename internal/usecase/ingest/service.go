package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/recdex/internal/domain"
	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
)

// MaxBatchSize is the maximum number of records per Ingest call.
const MaxBatchSize = 500

// Service stores records in the permission store and the index.
type Service struct {
	store        Store
	index        Indexer
	maxBatchSize int
}

// New creates an ingest service.
func New(store Store, index Indexer) *Service {
	return &Service{store: store, index: index, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Put validates and stores a single record. The metadata is written before
// the document so a record is never searchable without its permissions.
func (s *Service) Put(ctx context.Context, p domrec.Params) error {
	rec, err := domrec.New(p)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, &rec); err != nil {
		return domain.NewDependencyError("store", err)
	}
	if err := s.index.IndexRecord(ctx, &rec); err != nil {
		return domain.NewDependencyError("index", err)
	}
	return nil
}

// Ingest stores every record and reports one result per item.
// Validation failures skip only their own record; the first dependency
// failure fails the rest of the batch.
func (s *Service) Ingest(ctx context.Context, items []domrec.Params) []dombatch.Result {
	results := make([]dombatch.Result, len(items))

	if len(items) > s.maxBatchSize {
		err := fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidCombination)
		for i := range items {
			results[i] = dombatch.NewError(i, items[i].ID, err)
		}
		return results
	}

	for i := range items {
		err := s.Put(ctx, items[i])
		if err == nil {
			results[i] = dombatch.NewOK(i, items[i].ID)
			continue
		}
		results[i] = dombatch.NewError(i, items[i].ID, err)
		if errors.Is(err, domain.ErrDependency) {
			for j := i + 1; j < len(items); j++ {
				results[j] = dombatch.NewError(j, items[j].ID, fmt.Errorf("skipped: %w", err))
			}
			return results
		}
	}
	return results
}
