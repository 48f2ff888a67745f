package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/request"
	"github.com/kailas-cloud/recdex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
)

// DefaultMaxAllowList matches the index engine's default terms query limit.
const DefaultMaxAllowList = db.DefaultMaxTermsCount

// Service runs record searches: allow-list from the store, then the compiled query against the index.
type Service struct {
	store        Store
	index        Index
	maxAllowList int
}

// New creates a search service.
func New(store Store, index Index) *Service {
	return &Service{store: store, index: index, maxAllowList: DefaultMaxAllowList}
}

// WithMaxAllowList sets how many readable ids one search sends to the index.
// Non-positive values keep the default.
func (s *Service) WithMaxAllowList(n int) *Service {
	if n > 0 {
		s.maxAllowList = n
	}
	return s
}

// Search returns the page of records readable by userID that match req.
// The allow-list is fully materialized before the index is queried; an empty
// allow-list short-circuits to an empty page without an index call.
// An allow-list larger than the configured maximum keeps only the highest
// (newest) ids, so older readable records drop out of the results.
func (s *Service) Search(ctx context.Context, userID int64, req *request.Request) (result.Page, error) {
	log := logpkg.FromContext(ctx)
	metrics.SearchExtrasPredicates.Observe(float64(len(req.Extras())))

	start := time.Now()
	compiled := Compile(req)
	metrics.SearchPhaseDuration.WithLabelValues("compile").Observe(time.Since(start).Seconds())

	start = time.Now()
	ids, err := s.store.ReadableRecordIDs(ctx, userID, req.Filters())
	metrics.SearchPhaseDuration.WithLabelValues("allowlist").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("store_error").Inc()
		log.Warn("Allow-list lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return result.Page{}, wrapDependency("store", err)
	}
	metrics.SearchAllowListSize.Observe(float64(ids.Len()))

	if ids.Len() == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("empty_allowlist").Inc()
		log.Debug("Empty allow-list, skipping index", zap.Int64("user_id", userID))
		return result.Empty(req.Page(), req.PerPage()), nil
	}

	compiled.FilterIDs = ids.Sorted()
	if n := len(compiled.FilterIDs); n > s.maxAllowList {
		compiled.FilterIDs = compiled.FilterIDs[n-s.maxAllowList:]
		metrics.SearchAllowListTruncated.Inc()
		log.Warn("Allow-list truncated",
			zap.Int64("user_id", userID),
			zap.Int("allowlist", n),
			zap.Int("max", s.maxAllowList),
		)
	}

	start = time.Now()
	page, err := s.index.Search(ctx, &compiled)
	metrics.SearchPhaseDuration.WithLabelValues("index").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("index_error").Inc()
		log.Warn("Index search failed", zap.Error(err))
		return result.Page{}, wrapDependency("index", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	log.Debug("Search completed",
		zap.Int64("user_id", userID),
		zap.Int("allowlist", ids.Len()),
		zap.Int("total", page.Total()),
		zap.Int("extras", len(req.Extras())),
	)
	return page, nil
}

// Explain compiles req without touching the store or the index.
func (s *Service) Explain(req *request.Request) query.Search {
	return Compile(req)
}

func wrapDependency(name string, err error) error {
	if errors.Is(err, domain.ErrDependency) {
		return fmt.Errorf("search: %w", err)
	}
	return fmt.Errorf("search: %w", domain.NewDependencyError(name, err))
}
